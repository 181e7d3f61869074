// Package dbtest opens isolated in-memory databases for tests.
package dbtest

import (
	"testing"

	"catalog_shop/internal/config"
	"catalog_shop/internal/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a migrated, empty in-memory SQLite database closed at test cleanup.
// A single connection keeps every query on the same in-memory database.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(config.DBConfig{
		Driver:       "sqlite",
		Path:         ":memory:?_foreign_keys=on",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	gdb.Logger = logger.Default.LogMode(logger.Silent)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
