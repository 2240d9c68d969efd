package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"devfolio_backend/internal/feature/auth/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=1"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	// every :memory: connection is a separate database; foreign keys are enforced as in production
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entity.User{}, &entity.Follow{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedUser inserts a user and returns it.
func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "hashed", Name: "User " + email}
	require.NoError(t, NewUserGorm(db).Create(context.Background(), u))
	return u
}
