package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/studybuddy/backend/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database migrated with the full
// schema. Each test gets its own handle so state never leaks between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Class{},
		&model.Lesson{},
		&model.Question{},
		&model.ProgressRecord{},
	))
	return db
}
