package usecase

import (
	"context"
	"errors"

	"devfolio_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a func-field mock of UserRepository.
type mockUserRepository struct {
	CreateFunc             func(ctx context.Context, user *entity.User) error
	FindByEmailFunc        func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc           func(ctx context.Context, id string) (*entity.User, error)
	UpdateRefreshTokenFunc func(ctx context.Context, id string, token *string) error
	UpdateProfileFunc      func(ctx context.Context, id string, update entity.ProfileUpdate) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = "generated-id"
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) UpdateRefreshToken(ctx context.Context, id string, token *string) error {
	if m.UpdateRefreshTokenFunc != nil {
		return m.UpdateRefreshTokenFunc(ctx, id, token)
	}
	return nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id string, update entity.ProfileUpdate) (*entity.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, update)
	}
	return nil, errors.New("not implemented")
}

// mockFollowRepository is a func-field mock of FollowRepository.
type mockFollowRepository struct {
	CreateFunc func(ctx context.Context, followerID, followingID string) error
	DeleteFunc func(ctx context.Context, followerID, followingID string) error
	ExistsFunc func(ctx context.Context, followerID, followingID string) (bool, error)
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, followingID string) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, followerID, followingID)
	}
	return nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followingID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, followerID, followingID)
	}
	return nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, followerID, followingID)
	}
	return false, nil
}

// mockProfileReader records invalidated IDs.
type mockProfileReader struct {
	FindPublicProfileFunc func(ctx context.Context, id string) (*entity.PublicProfile, error)
	invalidated           []string
}

func (m *mockProfileReader) FindPublicProfile(ctx context.Context, id string) (*entity.PublicProfile, error) {
	if m.FindPublicProfileFunc != nil {
		return m.FindPublicProfileFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockProfileReader) InvalidateProfiles(_ context.Context, ids ...string) {
	m.invalidated = append(m.invalidated, ids...)
}

// mockTokenService issues predictable, always-distinct tokens.
type mockTokenService struct {
	IssueAccessTokenFunc   func(userID, email string) (string, error)
	IssueRefreshTokenFunc  func(userID, email string) (string, error)
	VerifyRefreshTokenFunc func(token string) (entity.TokenPayload, error)
	seq                    int
}

func (m *mockTokenService) IssueAccessToken(userID, email string) (string, error) {
	if m.IssueAccessTokenFunc != nil {
		return m.IssueAccessTokenFunc(userID, email)
	}
	m.seq++
	return "access-" + userID + "-" + string(rune('a'+m.seq)), nil
}

func (m *mockTokenService) IssueRefreshToken(userID, email string) (string, error) {
	if m.IssueRefreshTokenFunc != nil {
		return m.IssueRefreshTokenFunc(userID, email)
	}
	m.seq++
	return "refresh-" + userID + "-" + string(rune('a'+m.seq)), nil
}

func (m *mockTokenService) VerifyRefreshToken(token string) (entity.TokenPayload, error) {
	if m.VerifyRefreshTokenFunc != nil {
		return m.VerifyRefreshTokenFunc(token)
	}
	return entity.TokenPayload{}, errors.New("invalid token")
}
