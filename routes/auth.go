package routes

import (
	"github.com/gin-gonic/gin"
	authControllers "github.com/portalmart/ecommerce-api/controllers/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers the public "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(db)) // POST /auth/register
		authGroup.POST("/login", authControllers.Login(db))       // POST /auth/login
	}
}
