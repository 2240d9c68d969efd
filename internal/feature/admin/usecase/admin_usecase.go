// Package usecase implements user moderation for the admin surface.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"devfolio_backend/internal/feature/auth/domain/entity"
)

// ErrUserNotFound is returned when the moderated user does not exist.
var ErrUserNotFound = errors.New("user not found")

// Stats is the moderation dashboard summary.
type Stats struct {
	Users         int64 `json:"users"`
	BannedUsers   int64 `json:"bannedUsers"`
	VerifiedUsers int64 `json:"verifiedUsers"`
}

// UserStore is the persistence port of the moderation usecase.
type UserStore interface {
	Stats(ctx context.Context) (Stats, error)
	// List returns all users, newest first.
	List(ctx context.Context) ([]entity.User, error)
	// ToggleBan flips IsBanned and returns the new value. Banning also clears the refresh-token slot.
	ToggleBan(ctx context.Context, id string) (bool, error)
	// ToggleVerify flips IsVerified and returns the new value.
	ToggleVerify(ctx context.Context, id string) (bool, error)
	// Delete removes the user with its follow edges and returns the IDs on the other end of those edges.
	Delete(ctx context.Context, id string) ([]string, error)
}

// ProfileInvalidator drops cached public profiles.
type ProfileInvalidator interface {
	InvalidateProfiles(ctx context.Context, ids ...string)
}

type adminUsecase struct {
	store    UserStore
	profiles ProfileInvalidator
}

// NewAdminUsecase creates the moderation usecase.
func NewAdminUsecase(store UserStore, profiles ProfileInvalidator) *adminUsecase {
	return &adminUsecase{store: store, profiles: profiles}
}

func (u *adminUsecase) Stats(ctx context.Context) (Stats, error) {
	s, err := u.store.Stats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count users: %w", err)
	}
	return s, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := u.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ToggleBan bans or unbans a user. A banned user can no longer log in or refresh,
// and their current refresh token stops working immediately.
func (u *adminUsecase) ToggleBan(ctx context.Context, id string) (bool, error) {
	banned, err := u.store.ToggleBan(ctx, id)
	if err != nil {
		return false, err
	}
	slog.InfoContext(ctx, "user ban toggled", "user_id", id, "is_banned", banned)
	u.profiles.InvalidateProfiles(ctx, id)
	return banned, nil
}

// ToggleVerify sets or clears the verified badge shown on the public profile.
func (u *adminUsecase) ToggleVerify(ctx context.Context, id string) (bool, error) {
	verified, err := u.store.ToggleVerify(ctx, id)
	if err != nil {
		return false, err
	}
	slog.InfoContext(ctx, "user verification toggled", "user_id", id, "is_verified", verified)
	u.profiles.InvalidateProfiles(ctx, id)
	return verified, nil
}

// DeleteUser removes a user. Follower counts of everyone connected to them change,
// so their cached profiles are dropped too.
func (u *adminUsecase) DeleteUser(ctx context.Context, id string) error {
	neighbors, err := u.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "user deleted", "user_id", id, "follow_edges", len(neighbors))
	u.profiles.InvalidateProfiles(ctx, append(neighbors, id)...)
	return nil
}
