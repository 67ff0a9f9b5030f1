package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrzAtn/recipe-app-api/internal/recipes"
)

func TestIngredientsLoginRequired(t *testing.T) {
	s := newServer(t)

	w := s.doJSON(t, http.MethodGet, "/ingredients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRetrieveIngredientsScopedAndOrdered(t *testing.T) {
	s := newServer(t)
	u := s.createUser(t, "a@example.com", "testpass")
	other := s.createUser(t, "b@example.com", "testpass")
	token := s.tokenFor(t, u)
	store := recipes.NewStore(s.db)

	_, err := store.CreateIngredient(u.ID, "Kale")
	require.NoError(t, err)
	_, err = store.CreateIngredient(u.ID, "Salt")
	require.NoError(t, err)
	_, err = store.CreateIngredient(other.ID, "Vinegar")
	require.NoError(t, err)

	w := s.doJSON(t, http.MethodGet, "/ingredients", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	decode(t, w, &body)
	require.Len(t, body, 2)
	assert.Equal(t, "Salt", body[0]["name"])
	assert.Equal(t, "Kale", body[1]["name"])
}

func TestCreateIngredient(t *testing.T) {
	s := newServer(t)
	u := s.createUser(t, "test@example.com", "testpass")
	token := s.tokenFor(t, u)

	w := s.doJSON(t, http.MethodPost, "/ingredients", token, map[string]any{"name": "Cabbage"})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, s.db.Model(&recipes.Ingredient{}).
		Where("name = ? AND user_id = ?", "Cabbage", u.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateIngredientInvalid(t *testing.T) {
	s := newServer(t)
	u := s.createUser(t, "test@example.com", "testpass")
	token := s.tokenFor(t, u)

	w := s.doJSON(t, http.MethodPost, "/ingredients", token, map[string]any{"name": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngredientsAssignedOnly(t *testing.T) {
	s := newServer(t)
	u := s.createUser(t, "test@example.com", "testpass")
	token := s.tokenFor(t, u)
	store := recipes.NewStore(s.db)

	used, err := store.CreateIngredient(u.ID, "Apples")
	require.NoError(t, err)
	_, err = store.CreateIngredient(u.ID, "Turkey")
	require.NoError(t, err)

	r := &recipes.Recipe{Title: "Apple crumble", Price: 4.50, TimeMin: 40}
	require.NoError(t, store.CreateRecipe(u.ID, r, nil, []uint{used.ID}))

	w := s.doJSON(t, http.MethodGet, "/ingredients?assigned_only=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	decode(t, w, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "Apples", body[0]["name"])
}
