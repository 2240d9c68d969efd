package usecase

import (
	"context"
	"fmt"
	"strings"

	"devfolio_backend/internal/feature/auth/domain/entity"
)

// ProfileView is a public profile as seen by a particular viewer.
type ProfileView struct {
	Profile     *entity.PublicProfile
	IsFollowing bool
}

// Me returns the caller's own user record.
// The ID comes from a verified access token, so ErrUserNotFound here means the
// account was deleted after the token was issued.
func (u *authUsecase) Me(ctx context.Context, userID string) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile overwrites the caller's mutable profile fields.
func (u *authUsecase) UpdateProfile(ctx context.Context, userID string, update entity.ProfileUpdate) (*entity.User, error) {
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		update.Name = &trimmed
	}

	user, err := u.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	u.profiles.InvalidateProfiles(ctx, userID)
	return user, nil
}

// GetPublicProfile loads a public profile. viewerID is empty for anonymous viewers,
// in which case IsFollowing is always false.
func (u *authUsecase) GetPublicProfile(ctx context.Context, id, viewerID string) (*ProfileView, error) {
	profile, err := u.profiles.FindPublicProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{Profile: profile}
	if viewerID == "" {
		return view, nil
	}

	following, err := u.follows.Exists(ctx, viewerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check follow state: %w", err)
	}
	view.IsFollowing = following
	return view, nil
}

// Follow creates the directed edge followerID -> followingID.
// Both ends must still exist: access tokens are not checked against the store,
// so a deleted account may still present a valid one.
func (u *authUsecase) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	for _, id := range []string{followerID, followingID} {
		if _, err := u.users.FindByID(ctx, id); err != nil {
			return err
		}
	}
	if err := u.follows.Create(ctx, followerID, followingID); err != nil {
		return err
	}
	u.profiles.InvalidateProfiles(ctx, followerID, followingID)
	return nil
}

// Unfollow removes the directed edge followerID -> followingID.
func (u *authUsecase) Unfollow(ctx context.Context, followerID, followingID string) error {
	if err := u.follows.Delete(ctx, followerID, followingID); err != nil {
		return err
	}
	u.profiles.InvalidateProfiles(ctx, followerID, followingID)
	return nil
}
