package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"edu-platform/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// Authorizer 驗證 bearer token 是否仍為有效 session
type Authorizer interface {
	Authorize(ctx context.Context, bearer string) (*service.CustomClaims, error)
}

func extractBearer(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// RequireAuth 驗證通過後把 claims 放進 context
func RequireAuth(auth Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := extractBearer(c)
			if err != nil {
				return err
			}
			claims, err := auth.Authorize(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrTokenRevoked) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or revoked token")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to verify token").SetInternal(err)
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom 取出 RequireAuth 放入的 claims
func ClaimsFrom(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.CustomClaims)
	return claims, ok && claims != nil
}
