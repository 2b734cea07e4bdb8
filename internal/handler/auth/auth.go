// File: internal/handler/auth/auth.go
package auth

import (
	"context"

	"edu-platform/internal/model"
	"edu-platform/internal/service"
)

// Service 是 handler 需要的驗證流程，由 *service.AuthService 實作
type Service interface {
	Login(ctx context.Context, username, password string) (*model.AuthResult, error)
	Register(ctx context.Context, in service.RegisterInput) (*model.AuthResult, error)
	CurrentUser(ctx context.Context, userID int64) (*model.User, error)
}
