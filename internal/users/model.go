package users

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// User signs in with an email address instead of a username. Tags,
// ingredients and recipes all hang off its id.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:255;unique;not null"`
	Name         string `gorm:"size:255"`
	PasswordHash string `gorm:"not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	IsStaff      bool   `gorm:"not null;default:false"`
	IsSuperuser  bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func (u *User) CheckPassword(pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pw)) == nil
}

// ContextKey is where the auth middleware stores the caller for handlers.
const ContextKey = "currentUser"

// Current returns the authenticated user placed in the context by the auth
// middleware, or nil on unauthenticated routes.
func Current(c *gin.Context) *User {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil
	}
	u, _ := v.(*User)
	return u
}
