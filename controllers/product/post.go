package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portalmart/ecommerce-api/models"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name           string  `json:"name" binding:"required,min=3,max=100"`
	Description    string  `json:"description" binding:"max=1000"`
	ImageURL       string  `json:"image_url"`
	PriceShmeckles float64 `json:"price_shmeckles" binding:"required,gt=0"`
	PriceFlurbos   float64 `json:"price_flurbos" binding:"required,gt=0"`
	CategoryID     *uint   `json:"category_id"`
	TagIDs         []uint  `json:"tag_ids"`
}

// resolveAssociations validates the referenced category and loads the tags.
func resolveAssociations(db *gorm.DB, input ProductInput) (*models.Category, []models.Tag, error) {
	var category *models.Category
	if input.CategoryID != nil {
		var cat models.Category
		if err := db.First(&cat, *input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, errors.New("category does not exist")
			}
			return nil, nil, err
		}
		category = &cat
	}

	var tags []models.Tag
	if len(input.TagIDs) > 0 {
		if err := db.Where("id IN ?", input.TagIDs).Find(&tags).Error; err != nil {
			return nil, nil, err
		}
		if len(tags) != len(input.TagIDs) {
			return nil, nil, errors.New("one or more tags do not exist")
		}
	}
	return category, tags, nil
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		category, tags, err := resolveAssociations(db, input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product := models.Product{
			Name:           input.Name,
			Description:    input.Description,
			ImageURL:       input.ImageURL,
			PriceShmeckles: input.PriceShmeckles,
			PriceFlurbos:   input.PriceFlurbos,
			CategoryID:     input.CategoryID,
			Category:       category,
			Tags:           tags,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
