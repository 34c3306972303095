package database

import (
	"fmt"
	"log/slog" // use slog for structured logging
	"time"

	"bookstore/internal/config"
	"bookstore/internal/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

// Migrate creates or updates the schema for all bookstore tables.
func Migrate(db *gorm.DB) error {
	// BookKeyword is registered before the many2many models so the join
	// table keeps its composite primary key.
	if err := db.SetupJoinTable(&models.Book{}, "Keywords", &models.BookKeyword{}); err != nil {
		return fmt.Errorf("failed to set up book_keywords join table: %w", err)
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Author{},
		&models.Book{},
		&models.Keyword{},
		&models.Order{},
		&models.OrderLine{},
	)
}
