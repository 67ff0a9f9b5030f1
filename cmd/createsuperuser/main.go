package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/MrzAtn/recipe-app-api/internal/config"
	"github.com/MrzAtn/recipe-app-api/internal/database"
	"github.com/MrzAtn/recipe-app-api/internal/users"
)

func main() {
	email := flag.String("email", "", "email address for the new superuser")
	password := flag.String("password", "", "password for the new superuser")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, continuing with environment variables")
	}

	db, err := database.Open(config.New())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	u, err := users.NewRepository(db).CreateSuperuser(*email, *password)
	if err != nil {
		log.Fatalf("failed to create superuser: %v", err)
	}
	log.Printf("superuser %s created (id=%d)", u.Email, u.ID)
}
