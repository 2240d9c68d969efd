package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"devfolio_backend/internal/feature/auth/domain/entity"
	"devfolio_backend/internal/platform/db"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(db.Config{Driver: db.DriverSQLite, SQLitePath: ":memory:", RunMigrations: true})
	require.NoError(t, err)
	return gdb
}

func TestSeeder_Run(t *testing.T) {
	gdb := setupTestDB(t)
	s := NewSeeder(gdb, Options{Users: 8, MaxFollows: 3, Seed: 42, HashCost: bcrypt.MinCost})

	users, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 8)

	var count int64
	require.NoError(t, gdb.Model(&entity.User{}).Count(&count).Error)
	assert.EqualValues(t, 8, count)

	for _, u := range users {
		assert.NotEmpty(t, u.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(DemoPassword)))
	}

	var follows []entity.Follow
	require.NoError(t, gdb.Find(&follows).Error)
	perUser := map[string]int{}
	for _, f := range follows {
		assert.NotEqual(t, f.FollowerID, f.FollowingID, "no self follows")
		perUser[f.FollowerID]++
	}
	for id, n := range perUser {
		assert.LessOrEqual(t, n, 3, "user %s exceeds MaxFollows", id)
	}
}

func TestSeeder_SeedFollowsNeedsTwoUsers(t *testing.T) {
	gdb := setupTestDB(t)
	s := NewSeeder(gdb, Options{Seed: 1, HashCost: bcrypt.MinCost})

	users, err := s.SeedUsers(context.Background(), 1)
	require.NoError(t, err)

	n, err := s.SeedFollows(context.Background(), users)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeeder_ClearAll(t *testing.T) {
	gdb := setupTestDB(t)
	s := NewSeeder(gdb, Options{Users: 4, Seed: 7, HashCost: bcrypt.MinCost})
	_, err := s.Run(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.ClearAll(context.Background()))

	var users, follows int64
	require.NoError(t, gdb.Model(&entity.User{}).Count(&users).Error)
	require.NoError(t, gdb.Model(&entity.Follow{}).Count(&follows).Error)
	assert.Zero(t, users)
	assert.Zero(t, follows)
}
