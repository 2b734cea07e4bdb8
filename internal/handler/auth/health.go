// File: internal/handler/auth/health.go
package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const healthMessage = "Auth service is up and running!"

// HealthHandler 存活檢查，不需登入
// @Summary     Auth liveness
// @Tags        auth
// @Produce     plain
// @Success     200 {string} string "Auth service is up and running!"
// @Router      /auth/health [get]
func HealthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, healthMessage)
	}
}
