package usecase

import (
	"context"

	"devfolio_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and assigns its ID.
	// It returns ErrEmailAlreadyExists if the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound if no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound if no user has the ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// UpdateRefreshToken overwrites the user's refresh-token slot. A nil token clears it.
	UpdateRefreshToken(ctx context.Context, id string, token *string) error

	// UpdateProfile applies the non-nil fields of update and returns the stored user.
	UpdateProfile(ctx context.Context, id string, update entity.ProfileUpdate) (*entity.User, error)
}

// FollowRepository stores directed follow edges.
type FollowRepository interface {
	// Create returns ErrAlreadyFollowing when the edge exists.
	Create(ctx context.Context, followerID, followingID string) error

	// Delete returns ErrNotFollowing when the edge does not exist.
	Delete(ctx context.Context, followerID, followingID string) error

	Exists(ctx context.Context, followerID, followingID string) (bool, error)
}

// ProfileReader loads the public read model of a user.
type ProfileReader interface {
	// FindPublicProfile returns ErrUserNotFound if the user does not exist.
	FindPublicProfile(ctx context.Context, id string) (*entity.PublicProfile, error)

	// InvalidateProfiles drops any cached copy of the given profiles.
	InvalidateProfiles(ctx context.Context, ids ...string)
}

// TokenService issues and verifies the two token classes.
type TokenService interface {
	IssueAccessToken(userID, email string) (string, error)
	IssueRefreshToken(userID, email string) (string, error)
	VerifyRefreshToken(token string) (entity.TokenPayload, error)
}
