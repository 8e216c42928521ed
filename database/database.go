package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doru1011/swa06/config"
	"github.com/doru1011/swa06/models"
)

// Config holds the database connection settings. Type selects the driver:
// "postgres" for deployments, "sqlite" for local development.
type Config struct {
	Type     string
	Path     string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
}

// LoadConfig reads the database settings from the environment.
func LoadConfig() Config {
	return Config{
		Type:     config.GetEnvOrDefault("DB_TYPE", "sqlite"),
		Path:     config.GetEnvOrDefault("DB_PATH", "shop.db"),
		Host:     config.GetEnvOrDefault("DB_HOST", "localhost"),
		Port:     config.GetEnvOrDefault("DB_PORT", "5432"),
		Username: config.GetEnvOrDefault("DB_USERNAME", "shop"),
		Password: config.GetEnvOrDefault("DB_PASSWORD", ""),
		Database: config.GetEnvOrDefault("DB_DATABASE", "shop"),
		SSLMode:  config.GetEnvOrDefault("DB_SSLMODE", "disable"),
	}
}

// Connect opens the database per the configuration and tunes the pool.
func Connect(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, cfg.SSLMode)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connection established", "type", cfg.Type)
	return db, nil
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Artikel{},
		&models.Kunde{},
		&models.Adresse{},
		&models.Bestellung{},
		&models.Bestellposition{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database migrations completed")
	return nil
}
