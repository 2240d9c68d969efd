package entity

import "time"

// PublicProfile is the read model served to anyone viewing a user's page.
// It never carries the email, the password hash or the refresh token.
type PublicProfile struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Bio            string            `json:"bio"`
	AvatarURL      string            `json:"avatarUrl"`
	BannerURL      string            `json:"bannerUrl"`
	Location       string            `json:"location"`
	PortfolioURL   string            `json:"portfolioUrl"`
	ResumeURL      string            `json:"resumeUrl"`
	Socials        map[string]string `json:"socials"`
	IsVerified     bool              `json:"isVerified"`
	CreatedAt      time.Time         `json:"createdAt"`
	FollowerCount  int64             `json:"followerCount"`
	FollowingCount int64             `json:"followingCount"`
}

// NewPublicProfile copies the public fields of u. Counts are left at zero.
func NewPublicProfile(u *User) *PublicProfile {
	return &PublicProfile{
		ID:           u.ID,
		Name:         u.Name,
		Bio:          u.Bio,
		AvatarURL:    u.AvatarURL,
		BannerURL:    u.BannerURL,
		Location:     u.Location,
		PortfolioURL: u.PortfolioURL,
		ResumeURL:    u.ResumeURL,
		Socials:      u.Socials,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
	}
}
