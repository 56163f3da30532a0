package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/portalmart/ecommerce-api/notify"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up Auth, User, and Admin
// route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, queue *notify.Queue) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// User routes (JWT-protected): cart, checkout, order history, catalog
	SetupUserRoutes(r, db, queue)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
