package migrations

import (
	"log"

	"finance-tracker-server/models"
	"finance-tracker-server/utils"
)

// ClearOrphanedBudgetLinks nulls budget references left dangling by
// deletes that happened outside the API (for example manual SQL). Run at
// boot so both drivers behave the same whether or not the engine enforces
// foreign keys.
func ClearOrphanedBudgetLinks() {
	result := utils.DB.Model(&models.Transaction{}).
		Where("budget_id IS NOT NULL AND budget_id NOT IN (?)",
			utils.DB.Model(&models.Budget{}).Select("id")).
		Update("budget_id", nil)
	if result.Error != nil {
		log.Printf("Failed to clear orphaned budget links: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Cleared %d orphaned budget link(s)", result.RowsAffected)
	}
}
