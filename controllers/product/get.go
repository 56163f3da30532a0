package productControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portalmart/ecommerce-api/models"
	"gorm.io/gorm"
)

// Maps the public sort currencies onto their columns.
var sortColumns = map[string]string{
	"shmeckles": "price_shmeckles",
	"flurbos":   "price_flurbos",
}

// GET /user/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Category").Preload("Tags").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /user/products
//
// Query params:
//   - search: substring match on name and description
//   - sort: currency_direction, e.g. shmeckles_asc or flurbos_desc
//   - has_image: only products with an image
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Preload("Category").Preload("Tags")

		if search := c.Query("search"); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}

		if hasImage := c.Query("has_image"); hasImage == "true" {
			query = query.Where("image_url <> ''")
		}

		if sort := c.Query("sort"); sort != "" {
			parts := strings.SplitN(sort, "_", 2)
			if len(parts) != 2 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort parameter, expected currency_direction"})
				return
			}
			column, ok := sortColumns[parts[0]]
			if !ok || (parts[1] != "asc" && parts[1] != "desc") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort parameter, expected currency_direction"})
				return
			}
			query = query.Order(column + " " + parts[1])
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
