package models

import (
	"time"

	"gorm.io/gorm"
)

type SavingsContribution struct {
	gorm.Model
	GoalID uint      `gorm:"index;not null" json:"goal_id"`
	Amount float64   `gorm:"not null" json:"amount"`
	Date   time.Time `gorm:"not null" json:"date"`
}
