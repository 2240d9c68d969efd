// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "devfolio_backend/internal/feature/auth/domain/entity"

// SignupReq は/signupエンドポイントのリクエストボディを表します。
type SignupReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginReq は/loginエンドポイントのリクエストボディを表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileReq は/profileのリクエストボディです。
// 省略したフィールドは変更されず、含めたフィールドは（空文字でも）上書きされます。
type UpdateProfileReq struct {
	Name         *string            `json:"name"`
	Bio          *string            `json:"bio"`
	AvatarURL    *string            `json:"avatarUrl"`
	BannerURL    *string            `json:"bannerUrl"`
	Location     *string            `json:"location"`
	PortfolioURL *string            `json:"portfolioUrl"`
	ResumeURL    *string            `json:"resumeUrl"`
	Socials      *map[string]string `json:"socials"`
}

// ToEntity converts the request into a domain update.
func (r UpdateProfileReq) ToEntity() entity.ProfileUpdate {
	return entity.ProfileUpdate{
		Name:         r.Name,
		Bio:          r.Bio,
		AvatarURL:    r.AvatarURL,
		BannerURL:    r.BannerURL,
		Location:     r.Location,
		PortfolioURL: r.PortfolioURL,
		ResumeURL:    r.ResumeURL,
		Socials:      r.Socials,
	}
}
