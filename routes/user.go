package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/portalmart/ecommerce-api/controllers/cart"
	orderControllers "github.com/portalmart/ecommerce-api/controllers/order"
	productControllers "github.com/portalmart/ecommerce-api/controllers/product"
	"github.com/portalmart/ecommerce-api/middleware"
	"github.com/portalmart/ecommerce-api/notify"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, queue *notify.Queue) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(db))                              // GET /user/cart
			cartGroup.POST("", cartControllers.AddCartItem(db))                             // POST /user/cart
			cartGroup.POST("/merge", cartControllers.MergeCart(db))                         // POST /user/cart/merge
			cartGroup.PATCH("/items/:item_id", cartControllers.UpdateCartItemQuantity(db)) // PATCH /user/cart/items/:item_id
			cartGroup.DELETE("/items/:item_id", cartControllers.DeleteCartItem(db))        // DELETE /user/cart/items/:item_id
			cartGroup.DELETE("", cartControllers.ClearUserCart(db))                         // DELETE /user/cart
		}

		// ──────────────── Checkout & Order History ────────────────
		orderGroup := userGroup.Group("/orders")
		{
			orderGroup.POST("", orderControllers.CreateOrderHandler(db, queue))   // POST /user/orders
			orderGroup.GET("", orderControllers.GetUserOrdersHandler(db))         // GET /user/orders
			orderGroup.GET("/:order_id", orderControllers.GetOrderByIDHandler(db)) // GET /user/orders/:order_id
		}

		// ──────────────── Browse Catalog ────────────────
		userGroup.GET("/products", productControllers.GetProducts(db))           // GET /user/products
		userGroup.GET("/products/:id", productControllers.GetProductByID(db))    // GET /user/products/:id
		userGroup.GET("/categories", productControllers.GetAllCategories(db))    // GET /user/categories
		userGroup.GET("/categories/:id", productControllers.GetCategoryByID(db)) // GET /user/categories/:id
		userGroup.GET("/tags", productControllers.GetAllTags(db))                // GET /user/tags
	}
}
