package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrzAtn/recipe-app-api/internal/recipes"
)

func TestTagsLoginRequired(t *testing.T) {
	s := newServer(t)

	w := s.doJSON(t, http.MethodGet, "/tags", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRetrieveTagsOrderedByNameDesc(t *testing.T) {
	s := newServer(t)
	u := s.createUser(t, "test@example.com", "testpass")
	token := s.tokenFor(t, u)
	store := recipes.NewStore(s.db)

	_, err := store.CreateTag(u.ID, "Vegan")
	require.NoError(t, err)
	_, err = store.CreateTag(u.ID, "Dessert")
	require.NoError(t, err)

	w := s.doJSON(t, http.MethodGet, "/tags", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	decode(t, w, &body)
	require.Len(t, body, 2)
	assert.Equal(t, "Vegan", body[0]["name"])
	assert.Equal(t, "Dessert", body[1]["name"])
}

func TestTagsLimitedToUser(t *testing.T) {
	s := newServer(t)
	u := s.createUser(t, "a@example.com", "testpass")
	other := s.createUser(t, "b@example.com", "testpass")
	token := s.tokenFor(t, u)
	store := recipes.NewStore(s.db)

	_, err := store.CreateTag(other.ID, "Fruity")
	require.NoError(t, err)
	_, err = store.CreateTag(u.ID, "Comfort Food")
	require.NoError(t, err)

	w := s.doJSON(t, http.MethodGet, "/tags", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	decode(t, w, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "Comfort Food", body[0]["name"])
}

func TestCreateTag(t *testing.T) {
	s := newServer(t)
	u := s.createUser(t, "test@example.com", "testpass")
	token := s.tokenFor(t, u)

	w := s.doJSON(t, http.MethodPost, "/tags", token, map[string]any{"name": "Simple"})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, s.db.Model(&recipes.Tag{}).
		Where("name = ? AND user_id = ?", "Simple", u.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateTagInvalid(t *testing.T) {
	s := newServer(t)
	u := s.createUser(t, "test@example.com", "testpass")
	token := s.tokenFor(t, u)

	w := s.doJSON(t, http.MethodPost, "/tags", token, map[string]any{"name": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	decode(t, w, &body)
	assert.Contains(t, body, "name")
}

func TestTagsAssignedOnlyUnique(t *testing.T) {
	s := newServer(t)
	u := s.createUser(t, "test@example.com", "testpass")
	token := s.tokenFor(t, u)
	store := recipes.NewStore(s.db)

	tag, err := store.CreateTag(u.ID, "Breakfast")
	require.NoError(t, err)
	_, err = store.CreateTag(u.ID, "Lunch")
	require.NoError(t, err)

	for _, title := range []string{"Pancakes", "Porridge"} {
		r := &recipes.Recipe{Title: title, Price: 3.00, TimeMin: 10}
		require.NoError(t, store.CreateRecipe(u.ID, r, []uint{tag.ID}, nil))
	}

	w := s.doJSON(t, http.MethodGet, "/tags?assigned_only=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	decode(t, w, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "Breakfast", body[0]["name"])
}
