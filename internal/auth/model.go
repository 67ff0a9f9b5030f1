package auth

import "time"

// Token is the opaque bearer credential. One row per user; logging in again
// hands back the same key.
type Token struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:40;uniqueIndex;not null"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}
