package store

import (
	"context" // Context for queries
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"catalog_shop/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

const productViewColumns = "products.*, categories.name AS category_name, categories.slug AS category_slug"

// productsQuery is the base query shared by listing, counting and lookups
func (s *Store) productsQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("products").
		Joins("LEFT JOIN categories ON categories.id = products.category_id")
}

// ListCategories returns every category ordered by name
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// GetCategoryBySlug returns the category with the given slug
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var cat domain.Category
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCategoryNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get category %q: %w", slug, err)
	}
	return &cat, nil
}

// ListProducts returns one page of matching products, most recent first
func (s *Store) ListProducts(ctx context.Context, f ProductFilter) ([]domain.ProductView, error) {
	q, err := applyClauses(s.productsQuery(ctx), f.Clauses())
	if err != nil {
		return nil, err
	}
	limit, offset := f.page()
	views := []domain.ProductView{}
	err = q.Select(productViewColumns).
		Order("products.created_at DESC").
		Order("products.id DESC"). // Stable order for rows created in the same instant
		Limit(limit).
		Offset(offset).
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return views, nil
}

// CountProducts returns how many products match f, ignoring pagination
func (s *Store) CountProducts(ctx context.Context, f ProductFilter) (int64, error) {
	q, err := applyClauses(s.productsQuery(ctx), f.Clauses())
	if err != nil {
		return 0, err
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// GetProductBySlug returns the product with its category fields
func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*domain.ProductView, error) {
	var views []domain.ProductView
	err := s.productsQuery(ctx).
		Select(productViewColumns).
		Where("products.slug = ?", slug).
		Limit(1).
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", slug, err)
	}
	if len(views) == 0 {
		return nil, domain.ErrProductNotFound
	}
	return &views[0], nil
}

// GetProductByID returns the stored product row
func (s *Store) GetProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}
