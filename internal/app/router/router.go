// Package router はginエンジンとルーティングテーブルを構築します。
package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	adminhandler "devfolio_backend/internal/feature/admin/transport/handler"
	authhandler "devfolio_backend/internal/feature/auth/transport/handler"
	"devfolio_backend/internal/platform/http/handler"
	jwtmw "devfolio_backend/internal/platform/jwt"
	"devfolio_backend/internal/platform/logging"
	"devfolio_backend/internal/platform/metrics"
	"devfolio_backend/internal/platform/ratelimit"
)

const defaultOrigin = "http://localhost:3000"

// Deps はルーター構築に必要な依存関係です。
type Deps struct {
	Logger      *slog.Logger
	Origins     []string
	Verifier    jwtmw.AccessVerifier
	Limiter     ratelimit.Limiter
	AdminSecret string

	// TrustedProxies が空の場合、X-Forwarded-Forは無視されます。
	TrustedProxies []string

	Auth    *authhandler.AuthHandler
	Profile *authhandler.ProfileHandler
	Admin   *adminhandler.AdminHandler
}

// NewRouter はミドルウェアとルートを登録したginエンジンを返します。
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	origins := d.Origins
	if len(origins) == 0 {
		origins = []string{defaultOrigin}
	}

	r := gin.New()
	// ClientIPはレート制限のキーになるため、既定の「全プロキシを信頼」は使いません。
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		d.Logger.Warn("invalid trusted proxies, ignoring forwarded headers", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(
		logging.RequestLogger(d.Logger),
		metrics.Middleware(),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", adminhandler.AdminSecretHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	// 認証不要
	// 導通確認用
	for _, path := range []string{"/", "/healthz"} {
		r.GET(path, handler.Health)
		r.HEAD(path, handler.Health)
	}
	r.GET("/metrics", metrics.Handler())

	// クライアントは/api/auth配下を呼ぶため、同じルートを両方にマウントします。
	registerAuth(r.Group("/auth"), d)
	registerAuth(r.Group("/api/auth"), d)

	// 共有シークレットで保護された管理API
	admin := r.Group("/admin")
	admin.Use(adminhandler.RequireAdminSecret(d.AdminSecret))
	{
		admin.GET("/stats", d.Admin.Stats)
		admin.GET("/users", d.Admin.ListUsers)
		admin.PUT("/users/:id/ban", d.Admin.ToggleBan)
		admin.PUT("/users/:id/verify", d.Admin.ToggleVerify)
		admin.DELETE("/users/:id", d.Admin.DeleteUser)
	}

	return r
}

func registerAuth(g *gin.RouterGroup, d Deps) {
	// 新規ユーザー登録・ログイン・リフレッシュはIP単位でレート制限
	g.POST("/signup", ratelimit.Middleware(d.Limiter, "signup"), d.Auth.Signup)
	g.POST("/login", ratelimit.Middleware(d.Limiter, "login"), d.Auth.Login)
	g.POST("/refresh", ratelimit.Middleware(d.Limiter, "refresh"), d.Auth.Refresh)
	g.POST("/logout", d.Auth.Logout)

	// トークンは任意。有効な場合のみisFollowingを計算します。
	g.GET("/users/:id", jwtmw.OptionalAuth(d.Verifier), d.Profile.GetPublicProfile)

	// 認証必須のルート
	auth := g.Group("")
	auth.Use(jwtmw.AuthRequired(d.Verifier))
	{
		auth.GET("/me", d.Profile.Me)
		auth.PUT("/profile", d.Profile.UpdateProfile)
		auth.POST("/users/:id/follow", d.Profile.Follow)
		auth.DELETE("/users/:id/follow", d.Profile.Unfollow)
	}
}
