package migrations

import (
	"finance-tracker-server/models"
	"finance-tracker-server/utils"
)

func MigratePasswordResets() {
	utils.DB.AutoMigrate(&models.PasswordReset{})
}
