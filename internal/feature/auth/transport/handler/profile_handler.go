package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"devfolio_backend/internal/api"
	"devfolio_backend/internal/feature/auth/domain/entity"
	"devfolio_backend/internal/feature/auth/transport/http/dto"
	"devfolio_backend/internal/feature/auth/usecase"
	jwtmw "devfolio_backend/internal/platform/jwt"
)

// ProfileUsecase はプロフィールとフォロー操作のユースケースを定義します。
type ProfileUsecase interface {
	Me(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, update entity.ProfileUpdate) (*entity.User, error)
	GetPublicProfile(ctx context.Context, id, viewerID string) (*usecase.ProfileView, error)
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
}

// ProfileHandler はプロフィール関連のHTTPリクエストを処理します。
// 呼び出し元のIDは常に検証済みアクセストークンから取得します。
type ProfileHandler struct {
	profiles ProfileUsecase
}

// NewProfileHandler はProfileHandlerの新しいインスタンスを生成します。
func NewProfileHandler(profiles ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Me は呼び出し元自身のプロフィールを返します。
func (h *ProfileHandler) Me(c *gin.Context) {
	u, err := h.profiles.Me(c.Request.Context(), jwtmw.UserIDFrom(c))
	if err != nil {
		respondError(c, "me", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// UpdateProfile は呼び出し元のプロフィールを更新します。ボディに含まれたフィールドだけを上書きします。
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "update profile", err)
		return
	}

	u, err := h.profiles.UpdateProfile(c.Request.Context(), jwtmw.UserIDFrom(c), req.ToEntity())
	if err != nil {
		respondError(c, "update profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// GetPublicProfile は公開プロフィールを返します。
// 有効なアクセストークンがあればisFollowingを計算し、無ければfalseとします。
func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	view, err := h.profiles.GetPublicProfile(c.Request.Context(), c.Param("id"), jwtmw.UserIDFrom(c))
	if err != nil {
		respondError(c, "get public profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPublicProfileRes(view.Profile, view.IsFollowing))
}

// Follow は呼び出し元から対象ユーザーへのフォローを作成します。
func (h *ProfileHandler) Follow(c *gin.Context) {
	if err := h.profiles.Follow(c.Request.Context(), jwtmw.UserIDFrom(c), c.Param("id")); err != nil {
		respondError(c, "follow", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Followed successfully"})
}

// Unfollow は呼び出し元から対象ユーザーへのフォローを削除します。
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	if err := h.profiles.Unfollow(c.Request.Context(), jwtmw.UserIDFrom(c), c.Param("id")); err != nil {
		respondError(c, "unfollow", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Unfollowed successfully"})
}
