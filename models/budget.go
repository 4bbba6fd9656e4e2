package models

import (
	"time"

	"gorm.io/gorm"
)

type Budget struct {
	gorm.Model
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Category    string    `gorm:"not null" json:"category"`
	Amount      float64   `gorm:"not null" json:"amount"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	Description string    `json:"description"`
}
