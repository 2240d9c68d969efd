package dto

import (
	"time"

	"devfolio_backend/internal/feature/auth/domain/entity"
)

// UserResponse は本人向けのユーザー表現です。パスワードハッシュとリフレッシュトークンは含みません。
type UserResponse struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	Bio          string            `json:"bio"`
	AvatarURL    string            `json:"avatarUrl"`
	BannerURL    string            `json:"bannerUrl"`
	Location     string            `json:"location"`
	PortfolioURL string            `json:"portfolioUrl"`
	ResumeURL    string            `json:"resumeUrl"`
	Socials      map[string]string `json:"socials"`
	IsVerified   bool              `json:"isVerified"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// NewUserResponse builds the self view of u.
func NewUserResponse(u *entity.User) UserResponse {
	socials := u.Socials
	if socials == nil {
		socials = map[string]string{}
	}
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Bio:          u.Bio,
		AvatarURL:    u.AvatarURL,
		BannerURL:    u.BannerURL,
		Location:     u.Location,
		PortfolioURL: u.PortfolioURL,
		ResumeURL:    u.ResumeURL,
		Socials:      socials,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
	}
}

// AuthRes はsignup/loginのレスポンスです。リフレッシュトークンはCookieでのみ返します。
type AuthRes struct {
	Message     string       `json:"message,omitempty"`
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

// FollowCounts mirrors the `_count` object the web client reads.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// PublicProfileRes は公開プロフィールのレスポンスです。メールアドレスは含みません。
type PublicProfileRes struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Bio          string            `json:"bio"`
	AvatarURL    string            `json:"avatarUrl"`
	BannerURL    string            `json:"bannerUrl"`
	Location     string            `json:"location"`
	PortfolioURL string            `json:"portfolioUrl"`
	ResumeURL    string            `json:"resumeUrl"`
	Socials      map[string]string `json:"socials"`
	IsVerified   bool              `json:"isVerified"`
	CreatedAt    time.Time         `json:"createdAt"`
	Count        FollowCounts      `json:"_count"`
	IsFollowing  bool              `json:"isFollowing"`
}

// NewPublicProfileRes builds the public view of p as seen by a viewer.
func NewPublicProfileRes(p *entity.PublicProfile, isFollowing bool) PublicProfileRes {
	socials := p.Socials
	if socials == nil {
		socials = map[string]string{}
	}
	return PublicProfileRes{
		ID:           p.ID,
		Name:         p.Name,
		Bio:          p.Bio,
		AvatarURL:    p.AvatarURL,
		BannerURL:    p.BannerURL,
		Location:     p.Location,
		PortfolioURL: p.PortfolioURL,
		ResumeURL:    p.ResumeURL,
		Socials:      socials,
		IsVerified:   p.IsVerified,
		CreatedAt:    p.CreatedAt,
		Count:        FollowCounts{Followers: p.FollowerCount, Following: p.FollowingCount},
		IsFollowing:  isFollowing,
	}
}
