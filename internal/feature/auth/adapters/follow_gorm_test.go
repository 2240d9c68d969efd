package adapters

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"devfolio_backend/internal/feature/auth/usecase"
)

func TestFollowGorm_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowGorm(db)
	ctx := context.Background()
	a := seedUser(t, db, "a@example.com")
	b := seedUser(t, db, "b@example.com")

	require.NoError(t, repo.Create(ctx, a.ID, b.ID))

	ok, err := repo.Exists(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, ok, "edges are directed")

	assert.ErrorIs(t, repo.Create(ctx, a.ID, b.ID), usecase.ErrAlreadyFollowing)

	require.NoError(t, repo.Delete(ctx, a.ID, b.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID, b.ID), usecase.ErrNotFollowing)
}

func TestFollowGorm_Create_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowGorm(db)
	ctx := context.Background()
	b := seedUser(t, db, "b@example.com")

	assert.ErrorIs(t, repo.Create(ctx, "deleted-user", b.ID), usecase.ErrUserNotFound)
	assert.ErrorIs(t, repo.Create(ctx, b.ID, "deleted-user"), usecase.ErrUserNotFound)

	ok, err := repo.Exists(ctx, "deleted-user", b.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Postgres reports the composite-key clash as SQLSTATE 23505; it must map to the same sentinel.
func TestFollowGorm_Create_PostgresUniqueViolation(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "follows"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err = NewFollowGorm(db).Create(context.Background(), "a", "b")

	assert.ErrorIs(t, err, usecase.ErrAlreadyFollowing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A follow whose follower or target row is gone fails the users foreign key (SQLSTATE 23503).
func TestFollowGorm_Create_PostgresForeignKeyViolation(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "follows"`)).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "insert or update on table \"follows\" violates foreign key constraint"})
	mock.ExpectRollback()

	err = NewFollowGorm(db).Create(context.Background(), "deleted-user", "b")

	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
