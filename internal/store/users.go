package store

import (
	"context" // Context for queries
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"catalog_shop/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// FindUserByUsername returns the user with the given username
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// Ping checks that the database answers
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
