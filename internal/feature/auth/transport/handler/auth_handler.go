// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"devfolio_backend/internal/api"
	"devfolio_backend/internal/feature/auth/transport/http/dto"
	"devfolio_backend/internal/feature/auth/usecase"
	"devfolio_backend/internal/platform/cookie"
	"devfolio_backend/internal/platform/metrics"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は新規ユーザーを登録し、トークンペアを発行します。
	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.AuthResult, error)
	// Login はユーザーを認証し、トークンペアを発行します。
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	// Refresh はリフレッシュトークンをローテーションします。
	Refresh(ctx context.Context, refreshToken string) (*usecase.AuthResult, error)
	// Logout は保存中のリフレッシュトークンを削除します（ベストエフォート）。
	Logout(ctx context.Context, refreshToken string)
}

// RefreshCookieWriter はリフレッシュトークンCookieの書き込みを抽象化します。
type RefreshCookieWriter interface {
	SetRefreshCookie(c *gin.Context, token string)
	ClearRefreshCookie(c *gin.Context)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// リフレッシュトークンはCookieでのみ受け渡し、レスポンスボディには含めません。
type AuthHandler struct {
	auth    AuthUsecase
	cookies RefreshCookieWriter
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase, cookies RefreshCookieWriter) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時はリフレッシュCookieを設定して201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "signup", err)
		return
	}

	res, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	metrics.RecordAuthEvent("signup", err)
	if err != nil {
		respondError(c, "signup", err)
		return
	}

	slog.Info("user signup successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	h.cookies.SetRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusCreated, authResponse("User created successfully", res))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 未登録メールとパスワード不一致はどちらも同じ401レスポンスになります。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "login", err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	metrics.RecordAuthEvent("login", err)
	if err != nil {
		respondError(c, "login", err)
		return
	}

	slog.Info("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	h.cookies.SetRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusOK, authResponse("Logged in successfully", res))
}

// Refresh はCookieのリフレッシュトークンでトークンペアをローテーションします。リクエストボディは読みません。
func (h *AuthHandler) Refresh(c *gin.Context) {
	res, err := h.auth.Refresh(c.Request.Context(), cookie.ReadRefreshCookie(c))
	metrics.RecordAuthEvent("refresh", err)
	if err != nil {
		respondError(c, "refresh", err)
		return
	}

	h.cookies.SetRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusOK, authResponse("", res))
}

// Logout はセッションを終了します。セッションの有無に関わらず常に200を返し、Cookieを削除します。
func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context(), cookie.ReadRefreshCookie(c))
	metrics.RecordAuthEvent("logout", nil)

	h.cookies.ClearRefreshCookie(c)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out successfully"})
}

func authResponse(message string, res *usecase.AuthResult) dto.AuthRes {
	return dto.AuthRes{
		Message:     message,
		AccessToken: res.AccessToken,
		User:        dto.NewUserResponse(res.User),
	}
}
