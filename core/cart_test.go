package core

import (
	"sync"
	"testing"
	"time"

	"github.com/portalmart/ecommerce-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetOrCreateCartReusesExistingRow(t *testing.T) {
	db := setupTestDB(t)

	first, err := GetOrCreateCart(db, 1)
	require.NoError(t, err)
	second, err := GetOrCreateCart(db, 1)
	require.NoError(t, err)

	require.Equal(t, first.CartID, second.CartID)
	require.EqualValues(t, 1, countRows(t, db, &models.Cart{}))
}

func TestAddItemCreatesDistinctRowsPerProduct(t *testing.T) {
	db := setupTestDB(t)
	p1 := createProduct(t, db, "Plumbus", 10, 120)
	p2 := createProduct(t, db, "Portal Gun", 5000, 60000)

	_, err := AddItem(db, 1, p1.ID, 1)
	require.NoError(t, err)
	_, err = AddItem(db, 1, p2.ID, 1)
	require.NoError(t, err)

	cart, err := GetCartWithItems(db, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	for _, item := range cart.Items {
		require.Equal(t, 1, item.Quantity)
	}
}

func TestAddItemIncrementsExistingQuantity(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "Plumbus", 10, 120)

	_, err := AddItem(db, 1, p.ID, 2)
	require.NoError(t, err)
	item, err := AddItem(db, 1, p.ID, 3)
	require.NoError(t, err)

	require.Equal(t, 5, item.Quantity)
	require.EqualValues(t, 1, countRows(t, db, &models.CartItem{}))
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)

	_, err := AddItem(db, 1, 9999, 1)
	require.ErrorIs(t, err, ErrProductNotFound)
	require.EqualValues(t, 0, countRows(t, db, &models.CartItem{}))
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "Plumbus", 10, 120)

	_, err := AddItem(db, 1, p.ID, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = AddItem(db, 1, p.ID, -3)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestConcurrentAddsDoNotLoseIncrements(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "Plumbus", 10, 120)

	const callers = 10
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := AddItem(db, 1, p.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	cart, err := GetCartWithItems(db, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, callers, cart.Items[0].Quantity)
}

func TestUpdateItemQuantity(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "Plumbus", 10, 120)

	item, err := AddItem(db, 1, p.ID, 1)
	require.NoError(t, err)

	updated, err := UpdateItemQuantity(db, 1, item.ID, 7)
	require.NoError(t, err)
	require.Equal(t, 7, updated.Quantity)

	_, err = UpdateItemQuantity(db, 1, item.ID, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateItemQuantityForeignItemReadsAsNotFound(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "Plumbus", 10, 120)

	item, err := AddItem(db, 1, p.ID, 1)
	require.NoError(t, err)

	// User 2 must not be able to touch, or even detect, user 1's item.
	_, err = UpdateItemQuantity(db, 2, item.ID, 5)
	require.ErrorIs(t, err, ErrCartItemNotFound)
	err = RemoveItem(db, 2, item.ID)
	require.ErrorIs(t, err, ErrCartItemNotFound)

	var unchanged models.CartItem
	require.NoError(t, db.First(&unchanged, item.ID).Error)
	require.Equal(t, 1, unchanged.Quantity)
}

func TestRemoveItem(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "Plumbus", 10, 120)

	item, err := AddItem(db, 1, p.ID, 1)
	require.NoError(t, err)

	require.NoError(t, RemoveItem(db, 1, item.ID))
	require.EqualValues(t, 0, countRows(t, db, &models.CartItem{}))

	require.ErrorIs(t, RemoveItem(db, 1, item.ID), ErrCartItemNotFound)
}

func TestClearCartKeepsCartRow(t *testing.T) {
	db := setupTestDB(t)
	p1 := createProduct(t, db, "Plumbus", 10, 120)
	p2 := createProduct(t, db, "Meeseeks Box", 40, 500)

	_, err := AddItem(db, 1, p1.ID, 2)
	require.NoError(t, err)
	_, err = AddItem(db, 1, p2.ID, 1)
	require.NoError(t, err)

	require.NoError(t, ClearCart(db, 1))

	require.EqualValues(t, 0, countRows(t, db, &models.CartItem{}))
	require.EqualValues(t, 1, countRows(t, db, &models.Cart{}))
}

func TestMergeSkipsStaleEntries(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "Plumbus", 10, 120)

	merged := MergeItems(db, 1, []MergeEntry{
		{ProductID: p.ID, Quantity: 2},
		{ProductID: 9999, Quantity: 1},
	})

	require.Equal(t, 1, merged)
	cart, err := GetCartWithItems(db, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)
}

func TestReadCartHasNoSideEffects(t *testing.T) {
	db := setupTestDB(t)

	cart, err := GetCartWithItems(db, 1)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	// Reading must not lazily create a cart row.
	require.EqualValues(t, 0, countRows(t, db, &models.Cart{}))
}

func TestCartTotalUsesCurrentShmecklesPrices(t *testing.T) {
	db := setupTestDB(t)
	p1 := createProduct(t, db, "Plumbus", 10, 120)
	p2 := createProduct(t, db, "Meeseeks Box", 5, 60)

	_, err := AddItem(db, 1, p1.ID, 2)
	require.NoError(t, err)
	_, err = AddItem(db, 1, p2.ID, 1)
	require.NoError(t, err)

	cart, err := GetCartWithItems(db, 1)
	require.NoError(t, err)
	require.InDelta(t, 25.0, CartTotal(cart), 1e-9)

	// Display totals track the catalog, not a snapshot.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p1.ID).Update("price_shmeckles", 20).Error)
	cart, err = GetCartWithItems(db, 1)
	require.NoError(t, err)
	require.InDelta(t, 45.0, CartTotal(cart), 1e-9)
}

func TestAddItemInsertRaceFoldsIntoExistingRow(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "Plumbus", 10, 120)

	cart, err := GetOrCreateCart(db, 1)
	require.NoError(t, err)

	// Slip a conflicting row in just before the INSERT, on the
	// transaction's own connection, so the create loses the race on
	// uniq_cart_product.
	stale := time.Now().Add(-time.Hour)
	raced := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("race_insert", func(d *gorm.DB) {
		if raced {
			return
		}
		if _, ok := d.Statement.Dest.(*models.CartItem); !ok {
			return
		}
		raced = true
		_, err := d.Statement.ConnPool.ExecContext(d.Statement.Context,
			"INSERT INTO cart_items (cart_id, product_id, quantity, added_at) VALUES (?, ?, ?, ?)",
			cart.CartID, p.ID, 2, stale)
		require.NoError(t, err)
	}))
	t.Cleanup(func() { db.Callback().Create().Remove("race_insert") })

	item, err := AddItem(db, 1, p.ID, 3)
	require.NoError(t, err)
	require.True(t, raced)

	// The quantity folds into the winner's row and added_at is refreshed,
	// same as the plain increment path.
	require.Equal(t, 5, item.Quantity)
	require.WithinDuration(t, time.Now(), item.AddedAt, time.Minute)
	require.EqualValues(t, 1, countRows(t, db, &models.CartItem{}))
}
