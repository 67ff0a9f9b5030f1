package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/MrzAtn/recipe-app-api/internal/api"
	"github.com/MrzAtn/recipe-app-api/internal/config"
	"github.com/MrzAtn/recipe-app-api/internal/database"
	"github.com/MrzAtn/recipe-app-api/internal/recipes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, continuing with environment variables")
	}

	if m := os.Getenv("GIN_MODE"); m != "" {
		gin.SetMode(m)
	}

	cfg := config.New()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	media := recipes.NewMediaStore(cfg.MediaRoot)
	r := api.NewRouter(db, media)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
