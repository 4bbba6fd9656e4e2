package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"unique;not null" json:"email"`
	Password     string     `gorm:"not null" json:"-"`
	Currency     string     `gorm:"default:'$'" json:"currency"`
	GoogleID     string     `gorm:"column:google_id" json:"-"`
	RefreshToken string     `gorm:"column:refresh_token" json:"-"`
	LastLogoutAt *time.Time `gorm:"column:last_logout_at" json:"-"`
}
