// File: internal/handler/auth/me.go
package auth

import (
	"net/http"

	"edu-platform/internal/dto"
	"edu-platform/internal/middleware"

	"github.com/labstack/echo/v4"
)

// MeHandler 取得當前使用者資訊
// @Summary     Get current user info
// @Description 透過 Bearer token 取得當前使用者與導向路徑
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.UserResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /auth/me [get]
func MeHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid or missing token"})
		}

		user, err := svc.CurrentUser(c.Request().Context(), claims.UserID)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(user))
	}
}
