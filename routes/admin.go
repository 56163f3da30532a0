package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/portalmart/ecommerce-api/controllers/cart"
	orderControllers "github.com/portalmart/ecommerce-api/controllers/order"
	productControllers "github.com/portalmart/ecommerce-api/controllers/product"
	"github.com/portalmart/ecommerce-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.POST("/:id/image", productControllers.UploadProductImage(db))
			productAdmin.GET("", productControllers.GetProducts(db))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productControllers.CreateCategory(db))
			categoryAdmin.PUT("/:id", productControllers.UpdateCategory(db))
			categoryAdmin.GET("", productControllers.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(db))
		}

		// ─────────── Tag Management ───────────
		tagAdmin := adminGroup.Group("/tags")
		{
			tagAdmin.POST("", productControllers.CreateTag(db))
			tagAdmin.PUT("/:id", productControllers.UpdateTag(db))
			tagAdmin.GET("", productControllers.GetAllTags(db))
			tagAdmin.DELETE("/:id", productControllers.DeleteTag(db))
		}

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PATCH("/:order_id/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
		}

		// ─────────── Support ───────────
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(db))
	}
}
