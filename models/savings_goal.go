package models

import (
	"time"

	"gorm.io/gorm"
)

type SavingsGoal struct {
	gorm.Model
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Title        string    `gorm:"not null" json:"title"`
	TargetAmount float64   `gorm:"not null" json:"target_amount"`
	Deadline     time.Time `gorm:"not null" json:"deadline"`
	Description  string    `json:"description"`
}
