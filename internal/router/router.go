// File: internal/router/router.go
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"edu-platform/internal/cache"
	"edu-platform/internal/database"
	"edu-platform/internal/handler"
	"edu-platform/internal/handler/auth"
	"edu-platform/internal/middleware"
)

// AuthService 同時提供 handler 與 RequireAuth 所需的方法
type AuthService interface {
	auth.Service
	middleware.Authorizer
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, svc AuthService, db database.DB, c cache.Cache) {
	// 連線檢查
	e.GET("/ping", handler.PingHandler(db, c))

	// 前端與 API 不同源
	authGroup := e.Group("/auth", echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		MaxAge:       3600,
	}))
	authGroup.POST("/login", auth.LoginHandler(svc))
	authGroup.POST("/register", auth.RegisterHandler(svc))
	authGroup.GET("/health", auth.HealthHandler())

	// 取得當前使用者（需登入）
	authGroup.GET("/me", auth.MeHandler(svc), middleware.RequireAuth(svc))
}
