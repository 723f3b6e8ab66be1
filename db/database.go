package db

import (
	"os"
	"path/filepath"

	"shopadmin/logger"
	"shopadmin/models"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDatabase(dbPath string) {
	var err error

	// Ensure the directory exists (create if it doesn't)
	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Get().Fatal("Failed to create database directory", zap.Error(err))
		}
	}

	// TranslateError maps sqlite unique-constraint failures to
	// gorm.ErrDuplicatedKey so handlers can report slug conflicts.
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Get().Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Get().Info("Database connected", zap.String("path", dbPath))

	// Auto migrate the schema
	if err := Migrate(DB); err != nil {
		logger.Get().Fatal("Failed to migrate database", zap.Error(err))
	}
}

// Migrate applies the schema for all catalog entities.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.Category{}, &models.Subcategory{}, &models.Product{},
		&models.ProductImage{}, &models.Banner{}, &models.LandingPageContent{},
	)
}
