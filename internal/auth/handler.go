package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MrzAtn/recipe-app-api/internal/users"
	"github.com/MrzAtn/recipe-app-api/internal/validation"
)

type tokenDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type Controller struct {
	db    *gorm.DB
	users *users.Repository
}

func NewController(db *gorm.DB, repo *users.Repository) *Controller {
	return &Controller{db: db, users: repo}
}

// Token exchanges credentials for the caller's bearer token. Failures never
// include a token key in the body and never say whether the email exists.
func (ct *Controller) Token(c *gin.Context) {
	var body tokenDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, validation.FromBinding(err))
		return
	}

	u, err := ct.users.Authenticate(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, validation.New(
				"non_field_errors", "Unable to authenticate with provided credentials."))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	key, err := IssueToken(ct.db, u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": key})
}
