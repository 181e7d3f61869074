package db

import (
	"context" // Context for seed queries
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"catalog_shop/internal/config" // Admin credentials
	"catalog_shop/internal/domain" // Importing domain models
	"catalog_shop/internal/utils"  // Slug derivation

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// DefaultCategories is inserted once, when the categories table is empty
var DefaultCategories = []string{"Électronique", "Vêtements", "Beauté", "Maison", "Accessoires", "Supermarché"}

// Seed inserts the admin user and the default categories when they are missing.
// Running it again on a seeded database changes nothing.
func Seed(ctx context.Context, db *gorm.DB, admin config.AdminConfig) error {
	if err := seedAdmin(ctx, db, admin); err != nil {
		return err
	}
	return seedCategories(ctx, db)
}

func seedAdmin(ctx context.Context, db *gorm.DB, admin config.AdminConfig) error {
	var user domain.User
	err := db.WithContext(ctx).Where("username = ?", admin.Username).First(&user).Error
	if err == nil {
		return nil // Admin already present
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed admin lookup: %w", err)
	}
	// Hash the password and create the user
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin hash: %w", err)
	}
	user = domain.User{Username: admin.Username, PasswordHash: string(hash)}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("seed admin insert: %w", err)
	}
	logrus.WithFields(logrus.Fields{"username": admin.Username}).Info("Admin user created")
	return nil
}

func seedCategories(ctx context.Context, db *gorm.DB) error {
	// All categories are inserted or none are
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Category{}).Count(&count).Error; err != nil {
			return fmt.Errorf("seed categories count: %w", err)
		}
		if count > 0 {
			return nil // Table already populated
		}
		slugs := utils.UniqueSlugs(DefaultCategories)
		cats := make([]domain.Category, len(DefaultCategories))
		for i, name := range DefaultCategories {
			cats[i] = domain.Category{Name: name, Slug: slugs[i]}
		}
		if err := tx.Create(&cats).Error; err != nil {
			return fmt.Errorf("seed categories insert: %w", err) // Return error to rollback
		}
		logrus.WithFields(logrus.Fields{"count": len(cats)}).Info("Categories seeded")
		return nil
	})
}
