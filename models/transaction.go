package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

type Transaction struct {
	gorm.Model
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	BudgetID    *uint     `gorm:"index" json:"budget_id"`
	Type        string    `gorm:"not null" json:"type"`
	Category    string    `gorm:"not null" json:"category"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Date        time.Time `gorm:"not null" json:"date"`
	Description string    `json:"description"`
}
