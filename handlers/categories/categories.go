package categories

import (
	"net/http"

	"finance-tracker-server/models"
	"finance-tracker-server/utils"

	"github.com/gin-gonic/gin"
)

// GetCategories lists suggested categories for client pickers, optionally
// filtered by type.
func GetCategories(c *gin.Context) {
	query := utils.DB.Order("name ASC")
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var cats []models.Category
	if err := query.Find(&cats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": cats})
}
