package core

import (
	"errors"
	"log"
	"time"

	"github.com/portalmart/ecommerce-api/models"
	"gorm.io/gorm"
)

// MergeEntry is one guest-cart line submitted for merging on login.
type MergeEntry struct {
	ProductID uint
	Quantity  int
}

// GetOrCreateCart returns the user's cart, creating an empty one on first
// access. Safe under concurrent calls: the unique index on carts.user_id
// makes one creator win, the loser re-reads the winner's row.
func GetOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
				return nil, err
			}
			return &cart, nil
		}
		return nil, err
	}
	return &cart, nil
}

// AddItem puts a product into the user's cart with UPSERT semantics: an
// existing (cart, product) row has its quantity incremented, otherwise a new
// row is created. The increment runs as a single SQL expression so two
// concurrent adds of the same product never lose an update.
func AddItem(db *gorm.DB, userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
			Updates(map[string]interface{}{
				"quantity": gorm.Expr("quantity + ?", quantity),
				"added_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		item := models.CartItem{
			CartID:    cart.CartID,
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			// Lost an insert race on uniq_cart_product; fold the quantity
			// into the row the other writer created.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return tx.Model(&models.CartItem{}).
					Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
					Updates(map[string]interface{}{
						"quantity": gorm.Expr("quantity + ?", quantity),
						"added_at": time.Now(),
					}).Error
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	if err := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity sets the quantity of a cart item. The lookup is scoped
// to the caller's cart; an item owned by someone else reads as not found.
func UpdateItemQuantity(db *gorm.DB, userID uint, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := findOwnedItem(db, userID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a single cart item, with the same ownership scoping as
// UpdateItemQuantity.
func RemoveItem(db *gorm.DB, userID uint, itemID uint) error {
	item, err := findOwnedItem(db, userID, itemID)
	if err != nil {
		return err
	}
	return db.Delete(item).Error
}

func findOwnedItem(db *gorm.DB, userID uint, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := db.
		Joins("JOIN carts ON carts.cart_id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ClearCart removes every item from the user's cart. The cart row itself
// stays for reuse.
func ClearCart(db *gorm.DB, userID uint) error {
	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return err
	}
	return db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

// MergeItems applies AddItem for each guest-cart entry. A failing entry
// (typically a product that no longer exists) is logged and skipped; the
// batch itself always succeeds. Returns the number of entries merged.
func MergeItems(db *gorm.DB, userID uint, entries []MergeEntry) int {
	merged := 0
	for _, entry := range entries {
		if _, err := AddItem(db, userID, entry.ProductID, entry.Quantity); err != nil {
			log.Printf("⚠️ Cart merge for user %d: skipping product %d: %v", userID, entry.ProductID, err)
			continue
		}
		merged++
	}
	return merged
}

// GetCartWithItems loads the user's cart with items and their current
// product data for display. A user without a cart gets an empty cart value;
// reading never creates rows.
func GetCartWithItems(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// CartTotal sums the cart at current catalog prices, in shmeckles.
func CartTotal(cart *models.Cart) float64 {
	var total float64
	for _, item := range cart.Items {
		total += item.Product.PriceShmeckles * float64(item.Quantity)
	}
	return total
}
