package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"devfolio_backend/internal/api"
	"devfolio_backend/internal/feature/auth/usecase"
)

// errorStatus はユースケースのセンチネルエラーとHTTPステータスの対応表です。
var errorStatus = []struct {
	err    error
	status int
}{
	{usecase.ErrValidation, http.StatusBadRequest},
	{usecase.ErrSelfFollow, http.StatusBadRequest},
	{usecase.ErrAlreadyFollowing, http.StatusBadRequest},
	{usecase.ErrEmailAlreadyExists, http.StatusConflict},
	{usecase.ErrInvalidCredentials, http.StatusUnauthorized},
	{usecase.ErrMissingRefreshToken, http.StatusUnauthorized},
	{usecase.ErrInvalidRefreshToken, http.StatusUnauthorized},
	{usecase.ErrInvalidSession, http.StatusUnauthorized},
	{usecase.ErrAccountBanned, http.StatusForbidden},
	{usecase.ErrUserNotFound, http.StatusNotFound},
	{usecase.ErrNotFollowing, http.StatusNotFound},
}

// respondError はエラーをHTTPレスポンスに変換します。
// 既知のエラーはそのメッセージを返し、想定外のエラーはログに記録した上で汎用メッセージのみ返します。
func respondError(c *gin.Context, op string, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			slog.Warn(op+" failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(e.status, api.ErrorResponse{Error: err.Error()})
			return
		}
	}
	slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
}

// respondBindError はリクエストボディのバインドエラーを400で返します。
func respondBindError(c *gin.Context, op string, err error) {
	slog.Warn(op+" validation failed", "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: bindErrorMessage(err)})
}

// bindErrorMessage はバリデーションエラーを利用者向けの短いメッセージに変換します。
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, ", ")
}
