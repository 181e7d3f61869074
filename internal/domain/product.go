package domain

import (
	"strings" // Case folding
	"time"    // Timestamps
)

// Product Model
type Product struct {
	ID          uint      `gorm:"primaryKey"`                                     // Primary key
	Title       string    `gorm:"not null"`                                       // Human readable title
	Slug        string    `gorm:"uniqueIndex;not null"`                           // Unique slug derived from the title
	SearchTitle string    `gorm:"not null;default:''"`                            // Lower-cased title matched by searches
	Description *string   `gorm:"type:text"`                                      // Optional description
	Price       int64     `gorm:"not null"`                                       // Price in the smallest currency unit
	ImagePath   *string   `gorm:"column:image_path"`                              // Optional public path of the uploaded image
	CategoryID  *uint     `gorm:"index"`                                          // Optional foreign key to Category
	Category    *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"` // Products outlive their category
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`                           // Creation timestamp
}

// SearchKey folds a title or a search query to lower case. SQL LOWER only
// folds ASCII on SQLite, so titles are folded once in Go when stored.
func SearchKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ProductView is a product joined with its category fields
type ProductView struct {
	ID           uint      // Product ID
	Title        string    // Product title
	Slug         string    // Product slug
	Description  *string   // Optional description
	Price        int64     // Price in the smallest currency unit
	ImagePath    *string   // Optional image path
	CategoryID   *uint     // Optional category ID
	CategoryName *string   // Joined category name
	CategorySlug *string   // Joined category slug
	CreatedAt    time.Time // Creation timestamp
}
