// File: internal/handler/auth/errors.go
package auth

import (
	"errors"
	"net/http"

	"edu-platform/internal/dto"
	"edu-platform/internal/service"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// statusFor 將 service 的錯誤對應到 HTTP 狀態碼
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidRole), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		msg = "internal server error"
	}
	return c.JSON(status, dto.HTTPError{Message: msg})
}
