package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRecordAuthEvent(t *testing.T) {
	success := AuthEvents.WithLabelValues("login", OutcomeSuccess)
	failure := AuthEvents.WithLabelValues("login", OutcomeFailure)
	beforeOK, beforeNG := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	RecordAuthEvent("login", nil)
	RecordAuthEvent("login", errors.New("invalid credentials"))
	RecordAuthEvent("login", errors.New("invalid credentials"))

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(success))
	assert.Equal(t, beforeNG+2, testutil.ToFloat64(failure))
}

func TestMiddlewareAndHandler(t *testing.T) {
	r := gin.New()
	r.Use(Middleware())
	r.GET("/users/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", Handler())

	before := testutil.CollectAndCount(HTTPRequestDuration)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(HTTPRequestDuration), before)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `devfolio_http_request_duration_seconds_count{method="GET",route="/users/:id",status="204"}`))
}
