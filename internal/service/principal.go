// File: internal/service/principal.go
package service

import (
	"context"
	"errors"

	"edu-platform/internal/database"

	"github.com/jackc/pgx/v5"
)

// Principal 是驗證時使用的身分資料；本系統沒有停權狀態，旗標一律為 true
type Principal struct {
	Username              string
	PasswordHash          string
	Authorities           []string
	Enabled               bool
	AccountNonExpired     bool
	AccountNonLocked      bool
	CredentialsNonExpired bool
}

// LoadPrincipal 依 username 取出 Principal，查無此人回傳 ErrUserNotFound
func LoadPrincipal(ctx context.Context, q database.Querier, username string) (*Principal, error) {
	u, err := getUserByUsername(ctx, q, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &Principal{
		Username:              u.Username,
		PasswordHash:          u.PasswordHash,
		Authorities:           []string{u.Role.Authority()},
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}, nil
}

// authenticate 比對帳密；不存在的帳號與錯誤的密碼都回傳 ErrInvalidCredentials
func authenticate(ctx context.Context, q database.Querier, username, password string) (*Principal, error) {
	p, err := LoadPrincipal(ctx, q, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := ComparePassword(p.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}
