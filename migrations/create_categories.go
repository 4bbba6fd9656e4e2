package migrations

import (
	"finance-tracker-server/models"
	"finance-tracker-server/utils"
)

func MigrateCategories() {
	utils.DB.AutoMigrate(&models.Category{})
}
