package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrzAtn/recipe-app-api/internal/validation"
)

type createUserDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5"`
	Name     string `json:"name"`
}

type updateUserDTO struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}

// UserResponse is the public shape of a user; the password never leaves the
// server in any form.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toResponse(u *User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

type Controller struct {
	repo *Repository
}

func NewController(repo *Repository) *Controller {
	return &Controller{repo: repo}
}

func (ct *Controller) Create(c *gin.Context) {
	var body createUserDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, validation.FromBinding(err))
		return
	}

	u, err := ct.repo.Create(body.Email, body.Password, body.Name)
	if err != nil {
		var ferr validation.FieldErrors
		if errors.As(err, &ferr) {
			c.JSON(http.StatusBadRequest, ferr)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, toResponse(u))
}

func (ct *Controller) Me(c *gin.Context) {
	u := Current(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}
	c.JSON(http.StatusOK, toResponse(u))
}

func (ct *Controller) UpdateMe(c *gin.Context) {
	u := Current(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}

	var body updateUserDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, validation.FromBinding(err))
		return
	}

	if err := ct.repo.Update(u, body.Name, body.Password); err != nil {
		var ferr validation.FieldErrors
		if errors.As(err, &ferr) {
			c.JSON(http.StatusBadRequest, ferr)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, toResponse(u))
}
