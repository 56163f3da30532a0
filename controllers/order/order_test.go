package orderControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portalmart/ecommerce-api/core"
	"github.com/portalmart/ecommerce-api/models"
	"github.com/portalmart/ecommerce-api/notify"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=10000", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// testRouter registers the order routes behind a stub auth middleware that
// authenticates every request as userID.
func testRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.POST("/user/orders", CreateOrderHandler(db, nil))
	r.GET("/user/orders", GetUserOrdersHandler(db))
	r.GET("/user/orders/:order_id", GetOrderByIDHandler(db))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderHandler(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter(db, 1)

	product := models.Product{Name: "Plumbus", PriceShmeckles: 10, PriceFlurbos: 120}
	require.NoError(t, db.Create(&product).Error)
	_, err := core.AddItem(db, 1, product.ID, 2)
	require.NoError(t, err)

	w := postJSON(t, r, "/user/orders", gin.H{
		"delivery_address": "Dimension C-137, Earth",
		"phone":            "+1-555-0199",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	require.InDelta(t, 20.0, order.TotalAmount, 1e-9)
	require.Len(t, order.Items, 1)
	require.Equal(t, "Plumbus", order.Items[0].FrozenName)
}

func TestCreateOrderHandlerEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter(db, 1)

	w := postJSON(t, r, "/user/orders", gin.H{
		"delivery_address": "addr",
		"phone":            "123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Cart is empty")

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.EqualValues(t, 0, orders)
}

func TestCreateOrderHandlerMissingFields(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter(db, 1)

	w := postJSON(t, r, "/user/orders", gin.H{"phone": "123"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderHandlerScopedToOwner(t *testing.T) {
	db := setupTestDB(t)

	product := models.Product{Name: "Plumbus", PriceShmeckles: 10, PriceFlurbos: 120}
	require.NoError(t, db.Create(&product).Error)
	_, err := core.AddItem(db, 1, product.ID, 1)
	require.NoError(t, err)
	order, err := core.CreateOrder(db, 1, core.OrderRequest{DeliveryAddress: "addr", Phone: "123"})
	require.NoError(t, err)

	// Authenticated as a different user: the order must read as missing.
	r := testRouter(db, 2)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/user/orders/%d", order.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUserOrdersHandler(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter(db, 1)

	product := models.Product{Name: "Plumbus", PriceShmeckles: 10, PriceFlurbos: 120}
	require.NoError(t, db.Create(&product).Error)
	_, err := core.AddItem(db, 1, product.ID, 1)
	require.NoError(t, err)
	_, err = core.CreateOrder(db, 1, core.OrderRequest{DeliveryAddress: "addr", Phone: "123"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
}

func TestCreateOrderHandlerRespondsBeforeNotificationDelivery(t *testing.T) {
	db := setupTestDB(t)

	product := models.Product{Name: "Plumbus", PriceShmeckles: 10, PriceFlurbos: 120}
	require.NoError(t, db.Create(&product).Error)
	_, err := core.AddItem(db, 1, product.ID, 1)
	require.NoError(t, err)

	// A queue whose Redis is unreachable must not hold up the response.
	queue := notify.NewQueue("127.0.0.1:1")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", uint(1)) })
	r.POST("/user/orders", CreateOrderHandler(db, queue))

	start := time.Now()
	w := postJSON(t, r, "/user/orders", gin.H{
		"delivery_address": "addr",
		"phone":            "123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Less(t, time.Since(start), 2*time.Second)
}
