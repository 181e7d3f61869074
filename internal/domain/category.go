package domain

// Category Model
type Category struct {
	ID   uint   `gorm:"primaryKey"`           // Primary key
	Name string `gorm:"not null"`             // Display name
	Slug string `gorm:"uniqueIndex;not null"` // URL-safe unique identifier
}
