package models

import "gorm.io/gorm"

// Category is a suggested transaction category shown in client pickers.
// Transactions and budgets store the category name as a plain string, so
// deleting a category never touches existing rows.
type Category struct {
	gorm.Model
	Name string `gorm:"unique;not null" json:"name"`
	Type string `gorm:"not null" json:"type"`
}
