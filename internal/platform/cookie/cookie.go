// Package cookie はリフレッシュトークンをhttpOnly Cookieで受け渡すための処理を提供します。
package cookie

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// Name はリフレッシュトークンを格納するCookie名です。
	Name = "refreshToken"

	// MaxAge はCookieの有効期間です。リフレッシュトークン自体の有効期限より短く設定しています。
	MaxAge = 7 * 24 * time.Hour

	path = "/"
)

// Transport はリフレッシュトークンCookieの属性を保持します。
type Transport struct {
	production bool
}

// NewTransport はTransportを生成します。production=trueの場合はSecure+SameSite=Noneを付与します。
func NewTransport(production bool) *Transport {
	return &Transport{production: production}
}

// SetRefreshCookie はリフレッシュトークンをCookieに設定します。
func (t *Transport) SetRefreshCookie(c *gin.Context, token string) {
	t.write(c, token, int(MaxAge/time.Second))
}

// ClearRefreshCookie は同じ属性で即時失効するCookieを返し、ブラウザから削除させます。
func (t *Transport) ClearRefreshCookie(c *gin.Context) {
	t.write(c, "", -1)
}

// ReadRefreshCookie はリクエストのリフレッシュトークンを返します。無い場合は空文字です。
func ReadRefreshCookie(c *gin.Context) string {
	v, err := c.Cookie(Name)
	if err != nil {
		return ""
	}
	return v
}

func (t *Transport) write(c *gin.Context, value string, maxAge int) {
	if t.production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(Name, value, maxAge, path, "", t.production, true)
}
