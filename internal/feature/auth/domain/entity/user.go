// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered portfolio owner.
// It holds login credentials, the single active refresh-token slot,
// public profile fields and moderation flags.
type User struct {
	// ID is an opaque UUID assigned by the store on create.
	ID string `gorm:"primaryKey;size:36"`

	// Email is the login key. It must be unique across all users and is stored as given.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// RefreshToken is the only refresh token currently accepted for this user.
	// nil means no active session.
	RefreshToken *string `gorm:"type:text"`

	Name         string            `gorm:"size:255;not null"`
	Bio          string            `gorm:"type:text"`
	AvatarURL    string            `gorm:"size:1024"`
	BannerURL    string            `gorm:"size:1024"`
	Location     string            `gorm:"size:255"`
	PortfolioURL string            `gorm:"size:1024"`
	ResumeURL    string            `gorm:"size:1024"`
	Socials      map[string]string `gorm:"serializer:json;type:text"`

	IsBanned   bool `gorm:"not null;default:false"`
	IsVerified bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasActiveRefreshToken reports whether token is the refresh token stored in the user's slot.
func (u *User) HasActiveRefreshToken(token string) bool {
	return u.RefreshToken != nil && token != "" && *u.RefreshToken == token
}

// ProfileUpdate carries the mutable profile fields of a user.
// A nil field is left untouched; a non-nil field overwrites the stored value.
type ProfileUpdate struct {
	Name         *string
	Bio          *string
	AvatarURL    *string
	BannerURL    *string
	Location     *string
	PortfolioURL *string
	ResumeURL    *string
	Socials      *map[string]string
}

// IsEmpty reports whether the update carries no field at all.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Bio == nil && p.AvatarURL == nil && p.BannerURL == nil &&
		p.Location == nil && p.PortfolioURL == nil && p.ResumeURL == nil && p.Socials == nil
}
