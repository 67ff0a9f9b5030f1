package recipes

import "time"

// Tag and Ingredient are user-owned reference tables; recipes link to them
// through join tables.
type Tag struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:255;not null"`
	UserID uint   `gorm:"index;not null"`
}

type Ingredient struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:255;not null"`
	UserID uint   `gorm:"index;not null"`
}

type Recipe struct {
	ID        uint    `gorm:"primaryKey"`
	Title     string  `gorm:"size:255;not null"`
	Price     float64 `gorm:"type:decimal(5,2);not null"`
	TimeMin   int     `gorm:"not null"`
	Link      string  `gorm:"size:255"`
	Image     string  `gorm:"size:255"`
	UserID    uint    `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Tags        []Tag        `gorm:"many2many:recipe_tags;"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;"`
}
