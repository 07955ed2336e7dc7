package repository

import (
	"github.com/oninepa/k-yayo-backend/internal/domain"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for the core tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Member{},
		&domain.PointTransaction{},
		&domain.ReactionAward{},
	)
}
