package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doru1011/swa06/models"
	"github.com/doru1011/swa06/validation"
)

// SetupTestDB creates an in-memory SQLite database with the full schema.
// Every call gets a fresh database, so tests never see each other's rows.
//
// Exported for use in handler tests
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Artikel{},
		&models.Kunde{},
		&models.Adresse{},
		&models.Bestellung{},
		&models.Bestellposition{},
	)
	if err != nil {
		t.Fatalf("could not migrate test database: %v", err)
	}

	return db
}

// NewTestValidator builds the validator used across the service tests.
//
// Exported for use in handler tests
func NewTestValidator(t *testing.T) *validation.Validator {
	t.Helper()

	v, err := validation.New()
	if err != nil {
		t.Fatalf("could not create validator: %v", err)
	}
	return v
}
