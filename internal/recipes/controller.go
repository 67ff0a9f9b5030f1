package recipes

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MrzAtn/recipe-app-api/internal/users"
	"github.com/MrzAtn/recipe-app-api/internal/validation"
)

type attrDTO struct {
	Name string `json:"name" binding:"required"`
}

type createRecipeDTO struct {
	Title       string   `json:"title" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	TimeMin     *int     `json:"time_min" binding:"required,gte=0"`
	Link        string   `json:"link" binding:"omitempty,url"`
	Tags        []uint   `json:"tags"`
	Ingredients []uint   `json:"ingredients"`
}

type updateRecipeDTO struct {
	Title       *string  `json:"title"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	TimeMin     *int     `json:"time_min" binding:"omitempty,gte=0"`
	Link        *string  `json:"link" binding:"omitempty,url"`
	Tags        *[]uint  `json:"tags"`
	Ingredients *[]uint  `json:"ingredients"`
}

// AttrResponse serializes a tag or an ingredient.
type AttrResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeResponse is the list shape: linked tags and ingredients appear as id
// lists only.
type RecipeResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	TimeMin     int     `json:"time_min"`
	Link        string  `json:"link"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

// RecipeDetailResponse nests the full linked objects and carries the stored
// image path.
type RecipeDetailResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Price       float64        `json:"price"`
	TimeMin     int            `json:"time_min"`
	Link        string         `json:"link"`
	Image       string         `json:"image"`
	Tags        []AttrResponse `json:"tags"`
	Ingredients []AttrResponse `json:"ingredients"`
}

func toAttrResponse(id uint, name string) AttrResponse {
	return AttrResponse{ID: id, Name: name}
}

func toRecipeResponse(r *Recipe) RecipeResponse {
	out := RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		Price:       r.Price,
		TimeMin:     r.TimeMin,
		Link:        r.Link,
		Tags:        make([]uint, 0, len(r.Tags)),
		Ingredients: make([]uint, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		out.Tags = append(out.Tags, t.ID)
	}
	for _, i := range r.Ingredients {
		out.Ingredients = append(out.Ingredients, i.ID)
	}
	return out
}

func toRecipeDetailResponse(r *Recipe) RecipeDetailResponse {
	out := RecipeDetailResponse{
		ID:          r.ID,
		Title:       r.Title,
		Price:       r.Price,
		TimeMin:     r.TimeMin,
		Link:        r.Link,
		Image:       r.Image,
		Tags:        make([]AttrResponse, 0, len(r.Tags)),
		Ingredients: make([]AttrResponse, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		out.Tags = append(out.Tags, toAttrResponse(t.ID, t.Name))
	}
	for _, i := range r.Ingredients {
		out.Ingredients = append(out.Ingredients, toAttrResponse(i.ID, i.Name))
	}
	return out
}

type Controller struct {
	store *Store
	media *MediaStore
}

func NewController(store *Store, media *MediaStore) *Controller {
	return &Controller{store: store, media: media}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func serverError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (ct *Controller) ListTags(c *gin.Context) {
	u := users.Current(c)
	tags, err := ct.store.ListTags(u.ID, c.Query("assigned_only") == "1")
	if err != nil {
		serverError(c, err)
		return
	}
	out := make([]AttrResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, toAttrResponse(t.ID, t.Name))
	}
	c.JSON(http.StatusOK, out)
}

func (ct *Controller) CreateTag(c *gin.Context) {
	u := users.Current(c)
	var body attrDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, validation.FromBinding(err))
		return
	}
	t, err := ct.store.CreateTag(u.ID, body.Name)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAttrResponse(t.ID, t.Name))
}

func (ct *Controller) ListIngredients(c *gin.Context) {
	u := users.Current(c)
	ingredients, err := ct.store.ListIngredients(u.ID, c.Query("assigned_only") == "1")
	if err != nil {
		serverError(c, err)
		return
	}
	out := make([]AttrResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, toAttrResponse(i.ID, i.Name))
	}
	c.JSON(http.StatusOK, out)
}

func (ct *Controller) CreateIngredient(c *gin.Context) {
	u := users.Current(c)
	var body attrDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, validation.FromBinding(err))
		return
	}
	i, err := ct.store.CreateIngredient(u.ID, body.Name)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAttrResponse(i.ID, i.Name))
}

func (ct *Controller) List(c *gin.Context) {
	u := users.Current(c)

	tagIDs, err := parseIDList("tags", c.Query("tags"))
	if err != nil {
		c.JSON(http.StatusBadRequest, err.(validation.FieldErrors))
		return
	}
	ingredientIDs, err := parseIDList("ingredients", c.Query("ingredients"))
	if err != nil {
		c.JSON(http.StatusBadRequest, err.(validation.FieldErrors))
		return
	}

	list, err := ct.store.ListRecipes(u.ID, tagIDs, ingredientIDs)
	if err != nil {
		serverError(c, err)
		return
	}
	out := make([]RecipeResponse, 0, len(list))
	for i := range list {
		out = append(out, toRecipeResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (ct *Controller) Create(c *gin.Context) {
	u := users.Current(c)
	var body createRecipeDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, validation.FromBinding(err))
		return
	}

	r := &Recipe{
		Title:   body.Title,
		Price:   *body.Price,
		TimeMin: *body.TimeMin,
		Link:    body.Link,
	}
	if err := ct.store.CreateRecipe(u.ID, r, body.Tags, body.Ingredients); err != nil {
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusBadRequest, fieldErrs)
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRecipeResponse(r))
}

func (ct *Controller) Detail(c *gin.Context) {
	u := users.Current(c)
	r, ok := ct.recipeFromPath(c, u)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toRecipeDetailResponse(r))
}

func (ct *Controller) Update(c *gin.Context) {
	u := users.Current(c)
	r, ok := ct.recipeFromPath(c, u)
	if !ok {
		return
	}

	var body updateRecipeDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, validation.FromBinding(err))
		return
	}

	if body.Title != nil {
		r.Title = *body.Title
	}
	if body.Price != nil {
		r.Price = *body.Price
	}
	if body.TimeMin != nil {
		r.TimeMin = *body.TimeMin
	}
	if body.Link != nil {
		r.Link = *body.Link
	}

	if err := ct.store.SaveRecipe(r, body.Tags, body.Ingredients); err != nil {
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusBadRequest, fieldErrs)
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeDetailResponse(r))
}

func (ct *Controller) Delete(c *gin.Context) {
	u := users.Current(c)
	id, ok := idFromPath(c)
	if !ok {
		return
	}
	r, err := ct.store.DeleteRecipe(u.ID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
			return
		}
		serverError(c, err)
		return
	}
	if err := ct.media.Remove(r.Image); err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage validates the upload decodes as a raster image before anything
// touches disk; the previous file is only removed once the new one is stored.
func (ct *Controller) UploadImage(c *gin.Context) {
	u := users.Current(c)
	r, ok := ct.recipeFromPath(c, u)
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, validation.New("image", "No file was submitted."))
		return
	}
	f, err := fh.Open()
	if err != nil {
		serverError(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		serverError(c, err)
		return
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusBadRequest, validation.New("image",
			"Upload a valid image. The file you uploaded was either not an image or a corrupted image."))
		return
	}

	stored, err := ct.media.SaveRecipeImage(fh.Filename, format, data)
	if err != nil {
		serverError(c, err)
		return
	}

	previous := r.Image
	if err := ct.store.SetImage(r, stored); err != nil {
		serverError(c, err)
		return
	}
	if previous != "" && previous != stored {
		if err := ct.media.Remove(previous); err != nil {
			serverError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, toRecipeDetailResponse(r))
}

func idFromPath(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		notFound(c)
		return 0, false
	}
	return uint(id), true
}

func (ct *Controller) recipeFromPath(c *gin.Context, u *users.User) (*Recipe, bool) {
	id, ok := idFromPath(c)
	if !ok {
		return nil, false
	}
	r, err := ct.store.GetRecipe(u.ID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
		} else {
			serverError(c, err)
		}
		return nil, false
	}
	return r, true
}
