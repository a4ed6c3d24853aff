package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-od-api/internal/models"
)

// ConnectPostgres establishes a connection to the PostgreSQL database using the provided DSN.
func ConnectPostgres(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}

// Migrate applies the schema for the approval workflow tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserCredential{},
		&models.Staff{},
		&models.Department{},
		&models.AcademicTerm{},
		&models.Student{},
		&models.Application{},
		&models.ApplicationStudent{},
	)
}
