package core

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/portalmart/ecommerce-api/models"
	"gorm.io/gorm"
)

// OrderRequest carries the delivery details for checkout.
type OrderRequest struct {
	DeliveryAddress string
	Phone           string
}

// generateOrderRef returns a unique human-sortable order reference,
// e.g. 20250908130500-<uuid4>.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// CreateOrder converts the user's cart into an immutable order. The whole
// conversion is one transaction: the order row, its items and the cart-item
// deletions commit together or not at all.
//
// Prices and names are copied verbatim from the catalog at this instant
// (frozen_name/frozen_price); the order total is the shmeckles sum of those
// snapshots and is never recomputed afterwards. Cart items whose product has
// disappeared since they were added are skipped; a cart with nothing left to
// order fails with ErrEmptyCart.
func CreateOrder(db *gorm.DB, userID uint, req OrderRequest) (*models.Order, error) {
	var orderID uint

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		var total float64
		itemIDs := make([]uint, 0, len(cart.Items))
		orderItems := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			itemIDs = append(itemIDs, item.ID)
			if item.Product.ID == 0 {
				log.Printf("⚠️ Checkout for user %d: product %d vanished, skipping cart item %d", userID, item.ProductID, item.ID)
				continue
			}
			total += item.Product.PriceShmeckles * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				FrozenName:  item.Product.Name,
				FrozenPrice: item.Product.PriceShmeckles,
			})
		}
		if len(orderItems) == 0 {
			return ErrEmptyCart
		}

		order := models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			Status:          models.OrderStatusPending,
			TotalAmount:     total,
			DeliveryAddress: req.DeliveryAddress,
			Phone:           req.Phone,
			Items:           orderItems,
			CreatedAt:       time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Only the items this checkout read are removed; a line another
		// request adds meanwhile stays in the cart.
		if err := tx.Where("id IN ?", itemIDs).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		orderID = order.ID
		log.Printf("📦 Order %s created for user %d: %d items, %.2f shmeckles", order.OrderRef, userID, len(orderItems), total)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetUserOrders returns the user's order history, newest first, with the
// frozen items preloaded.
func GetUserOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.
		Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrderByID returns one order scoped to the requesting user. An order
// belonging to someone else is indistinguishable from a missing one.
func GetOrderByID(db *gorm.DB, userID uint, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.
		Where("id = ? AND user_id = ?", orderID, userID).
		Preload("Items").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}
