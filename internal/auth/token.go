package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"gorm.io/gorm"

	"github.com/MrzAtn/recipe-app-api/internal/users"
)

// IssueToken returns the user's token key, minting one on first use. Two
// concurrent first logins race on the unique index; the loser re-reads the
// winner's row instead of handing out a second key.
func IssueToken(db *gorm.DB, u *users.User) (string, error) {
	var t Token
	err := db.First(&t, "user_id = ?", u.ID).Error
	if err == nil {
		return t.Key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	key, err := generateKey()
	if err != nil {
		return "", err
	}
	t = Token{Key: key, UserID: u.ID}
	if err := db.Create(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.First(&t, "user_id = ?", u.ID).Error; err != nil {
				return "", err
			}
			return t.Key, nil
		}
		return "", err
	}
	return key, nil
}

// generateKey mints 20 random bytes as 40 hex characters.
func generateKey() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
