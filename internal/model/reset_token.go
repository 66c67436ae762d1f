package model

import (
	"time"

	"gorm.io/gorm"
)

// ResetToken is a single-use password-recovery grant. A user may hold
// several outstanding rows at once; each is matched and consumed by the
// full (UserID, Token) pair.
type ResetToken struct {
	gorm.Model
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reset_tokens_user_token"`
	Token     string    `gorm:"not null;uniqueIndex:idx_reset_tokens_user_token"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (t *ResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
