// Package logging はslogの初期化とginのリクエストログを提供します。
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	jwtmw "devfolio_backend/internal/platform/jwt"
)

// ParseLevel はLOG_LEVELの値をslog.Levelに変換します。未知の値はInfoになります。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger は本番ではJSON、それ以外ではテキスト形式のロガーを生成します。
func NewLogger(w io.Writer, production bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if production {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup はNewLoggerで作成したロガーをデフォルトに設定します。
func Setup(w io.Writer, production bool, level string) *slog.Logger {
	logger := NewLogger(w, production, ParseLevel(level))
	slog.SetDefault(logger)
	return logger
}

// RequestLogger はリクエストごとにメソッド・パス・ステータス・処理時間を記録するginミドルウェアです。
// 5xxはError、4xxはWarn、それ以外はInfoで出力します。
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
		}
		if uid := jwtmw.UserIDFrom(c); uid != "" {
			attrs = append(attrs, "user_id", uid)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}
		logger.Log(c.Request.Context(), level, "http request", attrs...)
	}
}
