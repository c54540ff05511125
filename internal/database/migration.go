package database

import (
	"fmt"

	"github.com/damia-cpu/Wellness-Cafe/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables for every persisted model.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.MenuItem{},
		&models.AddOn{},
		&models.Transaction{},
		&models.Expense{},
		&models.AuditLog{},
		&models.Backup{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
