package db

import (
	"fmt" // Error wrapping

	"catalog_shop/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate creates missing tables, foreign keys and indexes. Existing columns are left alone.
func Migrate(db *gorm.DB) error {
	// Categories come before products so the foreign key can be declared
	err := db.AutoMigrate(&domain.User{}, &domain.Category{}, &domain.Product{})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if err := backfillSearchTitles(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// backfillSearchTitles fills the search column of rows stored before it existed
func backfillSearchTitles(db *gorm.DB) error {
	var products []domain.Product
	if err := db.Select("id", "title").Where("search_title = ? AND title <> ?", "", "").Find(&products).Error; err != nil {
		return fmt.Errorf("load products without search title: %w", err)
	}
	for _, p := range products {
		if err := db.Model(&domain.Product{}).Where("id = ?", p.ID).Update("search_title", domain.SearchKey(p.Title)).Error; err != nil {
			return fmt.Errorf("backfill product %d: %w", p.ID, err)
		}
	}
	if len(products) > 0 {
		logrus.WithField("count", len(products)).Info("Search titles backfilled.")
	}
	return nil
}
