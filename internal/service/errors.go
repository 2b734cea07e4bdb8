package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserNotFound 驗證通過卻查不到使用者，屬於內部不一致
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username is already taken")
	ErrEmailTaken    = errors.New("email is already in use")
	ErrInvalidRole   = errors.New("invalid role")
	// ErrTokenRevoked token 無法驗證、已過期或已被新的登入取代
	ErrTokenRevoked = errors.New("token is no longer valid")
)
