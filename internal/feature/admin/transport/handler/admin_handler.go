// Package handler はadminフィーチャーのHTTPハンドラーと共有シークレットによる認可ミドルウェアを提供します。
package handler

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"devfolio_backend/internal/api"
	"devfolio_backend/internal/feature/admin/usecase"
	"devfolio_backend/internal/feature/auth/domain/entity"
)

// AdminSecretHeader はadmin APIの共有シークレットを運ぶヘッダーです。
const AdminSecretHeader = "X-Admin-Secret"

// AdminUsecase はモデレーション操作を定義します。
type AdminUsecase interface {
	Stats(ctx context.Context) (usecase.Stats, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
	ToggleBan(ctx context.Context, id string) (bool, error)
	ToggleVerify(ctx context.Context, id string) (bool, error)
	DeleteUser(ctx context.Context, id string) error
}

// RequireAdminSecret はX-Admin-Secretヘッダーを定数時間で比較するミドルウェアです。
// シークレットが未設定の場合は全てのリクエストを拒否します。
func RequireAdminSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(AdminSecretHeader)
		if secret == "" || got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			slog.Warn("admin access denied", "remote_addr", c.ClientIP(), "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "forbidden"})
			return
		}
		c.Next()
	}
}

// AdminUserRes はモデレーション画面向けのユーザー表現です。
type AdminUserRes struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
	IsBanned   bool      `json:"isBanned"`
	IsVerified bool      `json:"isVerified"`
}

// AdminHandler はモデレーションAPIを処理します。
type AdminHandler struct {
	admin AdminUsecase
}

// NewAdminHandler はAdminHandlerの新しいインスタンスを生成します。
func NewAdminHandler(admin AdminUsecase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats はユーザー数の集計を返します。
func (h *AdminHandler) Stats(c *gin.Context) {
	s, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		respondError(c, "admin stats", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ListUsers は全ユーザーを新しい順に返します。
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, "admin list users", err)
		return
	}
	res := make([]AdminUserRes, 0, len(users))
	for _, u := range users {
		res = append(res, AdminUserRes{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			CreatedAt:  u.CreatedAt,
			IsBanned:   u.IsBanned,
			IsVerified: u.IsVerified,
		})
	}
	c.JSON(http.StatusOK, res)
}

// ToggleBan はBAN状態を反転します。
func (h *AdminHandler) ToggleBan(c *gin.Context) {
	banned, err := h.admin.ToggleBan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "admin toggle ban", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s", pick(banned, "banned", "unbanned")), "isBanned": banned})
}

// ToggleVerify は認証済みバッジを反転します。
func (h *AdminHandler) ToggleVerify(c *gin.Context) {
	verified, err := h.admin.ToggleVerify(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "admin toggle verify", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s", pick(verified, "verified", "unverified")), "isVerified": verified})
}

// DeleteUser はユーザーを削除します。
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.admin.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "admin delete user", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "User deleted successfully"})
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func respondError(c *gin.Context, op string, err error) {
	if errors.Is(err, usecase.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	}
	slog.Error(op+" failed", "error", err)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
}
