package api

import (
	"context" // Context for store calls

	"catalog_shop/internal/domain" // Importing domain models
	"catalog_shop/internal/store"  // Filter and input types
)

// Catalog is the product and category storage used by the handlers
type Catalog interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	ListProducts(ctx context.Context, f store.ProductFilter) ([]domain.ProductView, error)
	CountProducts(ctx context.Context, f store.ProductFilter) (int64, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.ProductView, error)
	GetProductByID(ctx context.Context, id uint) (*domain.Product, error)
	CreateProduct(ctx context.Context, in store.ProductInput) (string, error)
	UpdateProduct(ctx context.Context, id uint, in store.ProductInput) (string, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// UserStore looks up admin accounts
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Pinger is a dependency probed by the readiness check
type Pinger func(ctx context.Context) error
