package store

import (
	"context" // Context for queries
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"strings" // String manipulation

	"catalog_shop/internal/domain" // Importing domain models
	"catalog_shop/internal/utils"  // Slug derivation

	"github.com/google/uuid" // Placeholder slugs
	"gorm.io/gorm"           // GORM ORM library
)

// ProductInput carries the admin-editable product fields
type ProductInput struct {
	Title       string  // Required, not blank
	Description *string // Optional
	Price       int64   // Smallest currency unit, not negative
	ImagePath   *string // Optional; nil keeps the stored image on update
	CategoryID  *uint   // Optional
}

// validate checks the required fields
func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.NewValidationError("title", "Titre et prix requis")
	}
	if in.Price < 0 {
		return domain.NewValidationError("price", "Le prix doit être positif")
	}
	return nil
}

// checkCategory makes sure a referenced category exists
func checkCategory(tx *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	var count int64
	if err := tx.Model(&domain.Category{}).Where("id = ?", *id).Count(&count).Error; err != nil {
		return fmt.Errorf("check category %d: %w", *id, err)
	}
	if count == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// CreateProduct inserts a product and returns its slug. The slug ends with
// the base-36 row id, so two products can never share one.
func (s *Store) CreateProduct(ctx context.Context, in ProductInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	p := domain.Product{
		Title:       strings.TrimSpace(in.Title),
		Slug:        "pending-" + uuid.NewString(), // Replaced once the id is known
		SearchTitle: domain.SearchKey(in.Title),
		Description: in.Description,
		Price:       in.Price,
		ImagePath:   in.ImagePath,
		CategoryID:  in.CategoryID,
	}
	// Insert and slug assignment happen atomically
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkCategory(tx, in.CategoryID); err != nil {
			return err
		}
		if err := tx.Create(&p).Error; err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		p.Slug = utils.ProductSlug(p.Title, p.ID)
		if err := tx.Model(&p).Update("slug", p.Slug).Error; err != nil {
			return fmt.Errorf("assign slug: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return p.Slug, nil
}

// UpdateProduct overwrites the editable fields of product id and returns its slug.
// The slug changes only with the title; a nil ImagePath keeps the stored image.
func (s *Store) UpdateProduct(ctx context.Context, id uint, in ProductInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	var slug string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Product
		if err := tx.First(&p, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		} else if err != nil {
			return fmt.Errorf("load product %d: %w", id, err)
		}
		if err := checkCategory(tx, in.CategoryID); err != nil {
			return err
		}
		title := strings.TrimSpace(in.Title)
		updates := map[string]any{
			"title":        title,
			"search_title": domain.SearchKey(title),
			"description":  in.Description,
			"price":        in.Price,
			"category_id":  in.CategoryID,
		}
		slug = p.Slug
		if title != p.Title {
			slug = utils.ProductSlug(title, p.ID) // New title, new slug
			updates["slug"] = slug
		}
		if in.ImagePath != nil {
			updates["image_path"] = *in.ImagePath
		}
		if err := tx.Model(&p).Updates(updates).Error; err != nil {
			return fmt.Errorf("update product %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return slug, nil
}

// DeleteProduct removes product id. Deleting a missing product is not an error.
func (s *Store) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&domain.Product{}, id).Error; err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}
