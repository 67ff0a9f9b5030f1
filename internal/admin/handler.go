package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MrzAtn/recipe-app-api/internal/users"
)

// UserRow is the staff-facing view of an account, flags included.
type UserRow struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

func toRow(u *users.User) UserRow {
	return UserRow{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}
}

type Controller struct {
	repo *users.Repository
}

func NewController(repo *users.Repository) *Controller {
	return &Controller{repo: repo}
}

// ListUsers returns every account in the system, oldest first.
func (ct *Controller) ListUsers(c *gin.Context) {
	all, err := ct.repo.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]UserRow, 0, len(all))
	for i := range all {
		out = append(out, toRow(&all[i]))
	}
	c.JSON(http.StatusOK, out)
}

// PromoteUser grants staff and superuser flags to an account.
func (ct *Controller) PromoteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	u, err := ct.repo.Promote(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toRow(u))
}
