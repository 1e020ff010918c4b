package database

import (
	"github.com/armii/platform-admin/pkg/entities"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.StatusRecord{},
	)
}
