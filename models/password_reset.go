package models

import "time"

// PasswordReset holds at most one live reset token per email. A new
// request overwrites the previous row, so an older token can never be
// consumed once a newer one has been issued.
type PasswordReset struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Token     string `gorm:"not null"`
	CreatedAt time.Time
}
