package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func responseCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestTransport_SetRefreshCookie(t *testing.T) {
	tests := []struct {
		name         string
		production   bool
		wantSecure   bool
		wantSameSite http.SameSite
	}{
		{name: "development", production: false, wantSecure: false, wantSameSite: http.SameSiteLaxMode},
		{name: "production", production: true, wantSecure: true, wantSameSite: http.SameSiteNoneMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			NewTransport(tt.production).SetRefreshCookie(c, "tok")

			ck := responseCookie(t, w)
			assert.Equal(t, Name, ck.Name)
			assert.Equal(t, "tok", ck.Value)
			assert.Equal(t, "/", ck.Path)
			assert.True(t, ck.HttpOnly)
			assert.Equal(t, tt.wantSecure, ck.Secure)
			assert.Equal(t, tt.wantSameSite, ck.SameSite)
			assert.Equal(t, 7*24*60*60, ck.MaxAge)
		})
	}
}

func TestTransport_ClearRefreshCookie(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NewTransport(true).ClearRefreshCookie(c)

	ck := responseCookie(t, w)
	assert.Equal(t, Name, ck.Name)
	assert.Empty(t, ck.Value)
	assert.True(t, ck.MaxAge < 0)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteNoneMode, ck.SameSite)
}

func TestReadRefreshCookie(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
		want   string
	}{
		{name: "present", cookie: &http.Cookie{Name: Name, Value: "tok"}, want: "tok"},
		{name: "other cookie only", cookie: &http.Cookie{Name: "session", Value: "x"}, want: ""},
		{name: "absent", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
			if tt.cookie != nil {
				c.Request.AddCookie(tt.cookie)
			}
			assert.Equal(t, tt.want, ReadRefreshCookie(c))
		})
	}
}
