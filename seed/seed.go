// seed/seed.go
package seed

import (
	"log"

	"finance-tracker-server/models"
	"finance-tracker-server/utils"
)

var defaultCategories = []models.Category{
	{Name: "Salary", Type: models.TransactionTypeIncome},
	{Name: "Freelance", Type: models.TransactionTypeIncome},
	{Name: "Investments", Type: models.TransactionTypeIncome},
	{Name: "Food", Type: models.TransactionTypeExpense},
	{Name: "Rent", Type: models.TransactionTypeExpense},
	{Name: "Transport", Type: models.TransactionTypeExpense},
	{Name: "Utilities", Type: models.TransactionTypeExpense},
	{Name: "Entertainment", Type: models.TransactionTypeExpense},
	{Name: "Health", Type: models.TransactionTypeExpense},
	{Name: "Shopping", Type: models.TransactionTypeExpense},
}

// SeedCategories inserts the suggested category list into a fresh
// database. Existing rows are left alone.
func SeedCategories() error {
	var count int64
	if err := utils.DB.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Categories already present. Skipping seeding.")
		return nil
	}

	if err := utils.DB.Create(&defaultCategories).Error; err != nil {
		return err
	}

	log.Println("Default categories seeded successfully.")
	return nil
}
