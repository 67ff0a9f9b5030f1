package recipes

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MrzAtn/recipe-app-api/internal/validation"
)

// Store runs every query with the owner predicate attached; a row belonging
// to someone else behaves exactly like a row that does not exist.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListTags returns the owner's tags, newest name first. With assignedOnly it
// keeps only tags linked to at least one recipe, each tag once.
func (s *Store) ListTags(ownerID uint, assignedOnly bool) ([]Tag, error) {
	q := s.db.Model(&Tag{})
	if assignedOnly {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").Distinct("tags.*")
	}
	var tags []Tag
	err := q.Where("tags.user_id = ?", ownerID).Order("tags.name DESC").Find(&tags).Error
	return tags, err
}

func (s *Store) CreateTag(ownerID uint, name string) (*Tag, error) {
	t := &Tag{Name: name, UserID: ownerID}
	if err := s.db.Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) ListIngredients(ownerID uint, assignedOnly bool) ([]Ingredient, error) {
	q := s.db.Model(&Ingredient{})
	if assignedOnly {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Distinct("ingredients.*")
	}
	var ingredients []Ingredient
	err := q.Where("ingredients.user_id = ?", ownerID).Order("ingredients.name DESC").Find(&ingredients).Error
	return ingredients, err
}

func (s *Store) CreateIngredient(ownerID uint, name string) (*Ingredient, error) {
	i := &Ingredient{Name: name, UserID: ownerID}
	if err := s.db.Create(i).Error; err != nil {
		return nil, err
	}
	return i, nil
}

// ListRecipes returns the owner's recipes, newest first. A non-empty id list
// keeps recipes linked to any of those tags (or ingredients); both lists
// together must each match.
func (s *Store) ListRecipes(ownerID uint, tagIDs, ingredientIDs []uint) ([]Recipe, error) {
	q := s.db.Model(&Recipe{})
	if len(tagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
	}
	if len(ingredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
	}
	var out []Recipe
	err := q.Where("recipes.user_id = ?", ownerID).
		Distinct("recipes.*").
		Order("recipes.id DESC").
		Preload("Tags").
		Preload("Ingredients").
		Find(&out).Error
	return out, err
}

func (s *Store) GetRecipe(ownerID, id uint) (*Recipe, error) {
	var r Recipe
	err := s.db.Preload("Tags").Preload("Ingredients").
		Where("recipes.user_id = ?", ownerID).
		First(&r, id).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateRecipe(ownerID uint, r *Recipe, tagIDs, ingredientIDs []uint) error {
	r.UserID = ownerID
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Create(r).Error; err != nil {
			return err
		}
		return s.replaceLinks(tx, r, &tagIDs, &ingredientIDs)
	})
}

// SaveRecipe persists field changes and, when an id list is non-nil, replaces
// the corresponding links. Owner and id are never touched.
func (s *Store) SaveRecipe(r *Recipe, tagIDs, ingredientIDs *[]uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Save(r).Error; err != nil {
			return err
		}
		return s.replaceLinks(tx, r, tagIDs, ingredientIDs)
	})
}

func (s *Store) replaceLinks(tx *gorm.DB, r *Recipe, tagIDs, ingredientIDs *[]uint) error {
	if tagIDs != nil {
		var tags []Tag
		if len(*tagIDs) > 0 {
			if err := tx.Find(&tags, *tagIDs).Error; err != nil {
				return err
			}
			found := make(map[uint]bool, len(tags))
			for _, t := range tags {
				found[t.ID] = true
			}
			if err := checkResolved("tags", *tagIDs, found); err != nil {
				return err
			}
		}
		if err := tx.Model(r).Association("Tags").Replace(&tags); err != nil {
			return err
		}
		r.Tags = tags
	}
	if ingredientIDs != nil {
		var ingredients []Ingredient
		if len(*ingredientIDs) > 0 {
			if err := tx.Find(&ingredients, *ingredientIDs).Error; err != nil {
				return err
			}
			found := make(map[uint]bool, len(ingredients))
			for _, i := range ingredients {
				found[i.ID] = true
			}
			if err := checkResolved("ingredients", *ingredientIDs, found); err != nil {
				return err
			}
		}
		if err := tx.Model(r).Association("Ingredients").Replace(&ingredients); err != nil {
			return err
		}
		r.Ingredients = ingredients
	}
	return nil
}

// checkResolved rejects a link list naming an id no row exists for, so the
// surrounding transaction rolls back instead of silently dropping the link.
func checkResolved(field string, requested []uint, found map[uint]bool) error {
	for _, id := range requested {
		if !found[id] {
			return validation.New(field, fmt.Sprintf("Invalid id %d - object does not exist.", id))
		}
	}
	return nil
}

// SetImage records the stored image path for a recipe.
func (s *Store) SetImage(r *Recipe, path string) error {
	r.Image = path
	return s.db.Model(r).Update("image", path).Error
}

// DeleteRecipe removes the row and its join entries, returning the deleted
// record so callers can clean up the image file.
func (s *Store) DeleteRecipe(ownerID, id uint) (*Recipe, error) {
	r, err := s.GetRecipe(ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Select(clause.Associations).Delete(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}
