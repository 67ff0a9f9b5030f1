package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MrzAtn/recipe-app-api/internal/auth"
	"github.com/MrzAtn/recipe-app-api/internal/config"
	"github.com/MrzAtn/recipe-app-api/internal/recipes"
	"github.com/MrzAtn/recipe-app-api/internal/users"
)

// Open connects to postgres and returns the handle; callers pass it down
// explicitly rather than reaching for a package global.
func Open(cfg *config.Config) (*gorm.DB, error) {
	log.Printf("connecting to database host=%s db=%s user=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBName, cfg.DBUser, cfg.DBPort, cfg.DBSSLMode)

	gormLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	log.Println("database connection established")
	return db, nil
}

// Migrate creates or updates the tables for every model in the catalog.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&users.User{},
		&auth.Token{},
		&recipes.Tag{},
		&recipes.Ingredient{},
		&recipes.Recipe{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
