package users

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/MrzAtn/recipe-app-api/internal/validation"
)

// MinPasswordLength is the shortest raw password accepted at registration.
const MinPasswordLength = 5

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike, so callers can't probe which addresses are registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// NormalizeEmail lower-cases the address; users always authenticate and are
// stored under the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *Repository) Create(email, password, name string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, validation.New("email", "This field is required.")
	}
	if len(password) < MinPasswordLength {
		return nil, validation.New("password", "Ensure this field has at least 5 characters.")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := r.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validation.New("email", "A user with this email already exists.")
		}
		return nil, err
	}
	return u, nil
}

func (r *Repository) CreateSuperuser(email, password string) (*User, error) {
	u, err := r.Create(email, password, "")
	if err != nil {
		return nil, err
	}
	u.IsStaff = true
	u.IsSuperuser = true
	if err := r.db.Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate resolves the user for an email/password pair. Every failure
// mode collapses into ErrInvalidCredentials.
func (r *Repository) Authenticate(email, password string) (*User, error) {
	var u User
	err := r.db.First(&u, "email = ? AND is_active = ?", NormalizeEmail(email), true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func (r *Repository) ByID(id uint) (*User, error) {
	var u User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Update applies a partial change to name and/or password. Nil means leave
// the field alone.
func (r *Repository) Update(u *User, name, password *string) error {
	if name != nil {
		u.Name = *name
	}
	if password != nil {
		if len(*password) < MinPasswordLength {
			return validation.New("password", "Ensure this field has at least 5 characters.")
		}
		hash, err := HashPassword(*password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	return r.db.Save(u).Error
}

func (r *Repository) All() ([]User, error) {
	var out []User
	if err := r.db.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Promote grants the staff and superuser flags to an existing account.
func (r *Repository) Promote(id uint) (*User, error) {
	u, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	u.IsStaff = true
	u.IsSuperuser = true
	if err := r.db.Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}
