package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MrzAtn/recipe-app-api/internal/admin"
	"github.com/MrzAtn/recipe-app-api/internal/auth"
	"github.com/MrzAtn/recipe-app-api/internal/recipes"
	"github.com/MrzAtn/recipe-app-api/internal/users"
	"github.com/MrzAtn/recipe-app-api/internal/validation"
)

// NewRouter wires every endpoint onto a gin engine. The db handle and media
// store come in from the caller; nothing here holds global state.
func NewRouter(db *gorm.DB, media *recipes.MediaStore) *gin.Engine {
	validation.RegisterTagNames()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method not allowed."})
	})

	userRepo := users.NewRepository(db)
	userCtl := users.NewController(userRepo)
	authCtl := auth.NewController(db, userRepo)
	recipeCtl := recipes.NewController(recipes.NewStore(db), media)
	adminCtl := admin.NewController(userRepo)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/users/create", userCtl.Create)
	r.POST("/users/token", authCtl.Token)

	protected := r.Group("", auth.RequireAuth(db))
	protected.GET("/users/me", userCtl.Me)
	protected.PATCH("/users/me", userCtl.UpdateMe)

	protected.GET("/tags", recipeCtl.ListTags)
	protected.POST("/tags", recipeCtl.CreateTag)
	protected.GET("/ingredients", recipeCtl.ListIngredients)
	protected.POST("/ingredients", recipeCtl.CreateIngredient)

	protected.GET("/recipes", recipeCtl.List)
	protected.POST("/recipes", recipeCtl.Create)
	protected.GET("/recipes/:id", recipeCtl.Detail)
	protected.PATCH("/recipes/:id", recipeCtl.Update)
	protected.DELETE("/recipes/:id", recipeCtl.Delete)
	protected.POST("/recipes/:id/upload-image", recipeCtl.UploadImage)

	staff := protected.Group("/admin", auth.RequireStaff())
	staff.GET("/users", adminCtl.ListUsers)
	staff.POST("/users/:id/promote", adminCtl.PromoteUser)

	return r
}
