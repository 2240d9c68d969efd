package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devfolio_backend/internal/feature/auth/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestAuthUsecase_Me(t *testing.T) {
	t.Parallel()
	users := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*entity.User, error) {
			if id == "u1" {
				return &entity.User{ID: "u1", Name: "Ada"}, nil
			}
			return nil, ErrUserNotFound
		},
	}
	uc := newTestUsecase(users, &mockFollowRepository{}, &mockProfileReader{}, &mockTokenService{})

	u, err := uc.Me(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)

	_, err = uc.Me(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthUsecase_UpdateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success: trims name and invalidates cache", func(t *testing.T) {
		t.Parallel()
		var got entity.ProfileUpdate
		users := &mockUserRepository{
			UpdateProfileFunc: func(ctx context.Context, id string, update entity.ProfileUpdate) (*entity.User, error) {
				got = update
				return &entity.User{ID: id, Name: *update.Name}, nil
			},
		}
		profiles := &mockProfileReader{}
		uc := newTestUsecase(users, &mockFollowRepository{}, profiles, &mockTokenService{})

		u, err := uc.UpdateProfile(ctx, "u1", entity.ProfileUpdate{Name: strPtr("  Ada  "), Bio: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, "Ada", u.Name)
		assert.Equal(t, "", *got.Bio)
		assert.Nil(t, got.Location)
		assert.Equal(t, []string{"u1"}, profiles.invalidated)
	})

	t.Run("failure: blank name", func(t *testing.T) {
		t.Parallel()
		uc := newTestUsecase(&mockUserRepository{}, &mockFollowRepository{}, &mockProfileReader{}, &mockTokenService{})

		_, err := uc.UpdateProfile(ctx, "u1", entity.ProfileUpdate{Name: strPtr("   ")})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("failure: user gone", func(t *testing.T) {
		t.Parallel()
		users := &mockUserRepository{
			UpdateProfileFunc: func(ctx context.Context, id string, update entity.ProfileUpdate) (*entity.User, error) {
				return nil, ErrUserNotFound
			},
		}
		profiles := &mockProfileReader{}
		uc := newTestUsecase(users, &mockFollowRepository{}, profiles, &mockTokenService{})

		_, err := uc.UpdateProfile(ctx, "u1", entity.ProfileUpdate{Bio: strPtr("x")})
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Empty(t, profiles.invalidated)
	})
}

func TestAuthUsecase_GetPublicProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	profiles := &mockProfileReader{
		FindPublicProfileFunc: func(ctx context.Context, id string) (*entity.PublicProfile, error) {
			if id != "target" {
				return nil, ErrUserNotFound
			}
			return &entity.PublicProfile{ID: "target", Name: "Grace", FollowerCount: 1}, nil
		},
	}

	tests := []struct {
		name          string
		id            string
		viewerID      string
		exists        bool
		wantFollowing bool
		wantErr       error
	}{
		{name: "anonymous viewer", id: "target"},
		{name: "viewer who follows", id: "target", viewerID: "viewer", exists: true, wantFollowing: true},
		{name: "viewer who does not follow", id: "target", viewerID: "viewer"},
		{name: "unknown profile", id: "nobody", wantErr: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			follows := &mockFollowRepository{
				ExistsFunc: func(ctx context.Context, followerID, followingID string) (bool, error) {
					if tt.viewerID == "" {
						t.Fatal("anonymous viewers must not hit the follow store")
					}
					assert.Equal(t, tt.viewerID, followerID)
					assert.Equal(t, tt.id, followingID)
					return tt.exists, nil
				},
			}
			uc := newTestUsecase(&mockUserRepository{}, follows, profiles, &mockTokenService{})

			view, err := uc.GetPublicProfile(ctx, tt.id, tt.viewerID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Grace", view.Profile.Name)
			assert.Equal(t, tt.wantFollowing, view.IsFollowing)
		})
	}
}

func TestAuthUsecase_Follow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	usersExist := func(ctx context.Context, id string) (*entity.User, error) {
		if id == "me" || id == "target" {
			return &entity.User{ID: id}, nil
		}
		return nil, ErrUserNotFound
	}

	tests := []struct {
		name        string
		followerID  string
		followingID string
		createErr   error
		wantErr     error
	}{
		{name: "success", followerID: "me", followingID: "target"},
		{name: "self follow", followerID: "me", followingID: "me", wantErr: ErrSelfFollow},
		{name: "unknown target", followerID: "me", followingID: "nobody", wantErr: ErrUserNotFound},
		{name: "deleted follower", followerID: "ghost", followingID: "target", wantErr: ErrUserNotFound},
		{name: "duplicate", followerID: "me", followingID: "target", createErr: ErrAlreadyFollowing, wantErr: ErrAlreadyFollowing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			profiles := &mockProfileReader{}
			created := false
			follows := &mockFollowRepository{
				CreateFunc: func(ctx context.Context, followerID, followingID string) error {
					created = true
					return tt.createErr
				},
			}
			uc := newTestUsecase(&mockUserRepository{FindByIDFunc: usersExist}, follows, profiles, &mockTokenService{})

			err := uc.Follow(ctx, tt.followerID, tt.followingID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, profiles.invalidated)
				if tt.createErr == nil {
					assert.False(t, created, "no edge is written when an end is missing")
				}
				return
			}
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"me", "target"}, profiles.invalidated)
		})
	}
}

func TestAuthUsecase_Unfollow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		profiles := &mockProfileReader{}
		uc := newTestUsecase(&mockUserRepository{}, &mockFollowRepository{}, profiles, &mockTokenService{})

		require.NoError(t, uc.Unfollow(ctx, "me", "target"))
		assert.ElementsMatch(t, []string{"me", "target"}, profiles.invalidated)
	})

	t.Run("edge missing", func(t *testing.T) {
		t.Parallel()
		follows := &mockFollowRepository{
			DeleteFunc: func(ctx context.Context, followerID, followingID string) error { return ErrNotFollowing },
		}
		uc := newTestUsecase(&mockUserRepository{}, follows, &mockProfileReader{}, &mockTokenService{})

		assert.ErrorIs(t, uc.Unfollow(ctx, "me", "target"), ErrNotFollowing)
	})

	t.Run("store error", func(t *testing.T) {
		t.Parallel()
		follows := &mockFollowRepository{
			DeleteFunc: func(ctx context.Context, followerID, followingID string) error { return errors.New("db down") },
		}
		uc := newTestUsecase(&mockUserRepository{}, follows, &mockProfileReader{}, &mockTokenService{})

		assert.Error(t, uc.Unfollow(ctx, "me", "target"))
	})
}
