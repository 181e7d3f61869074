// Package store holds the gorm-backed catalog queries and product mutations.
package store

import "gorm.io/gorm" // GORM ORM library

// Store wraps the database handle shared by every query
type Store struct {
	db *gorm.DB
}

// New creates a Store over db
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
