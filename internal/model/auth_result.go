// File: internal/model/auth_result.go
package model

const TokenTypeBearer = "Bearer"

// AuthResult 登入或註冊成功後回傳給呼叫端的結果，不落地
type AuthResult struct {
	Token       string
	TokenType   string
	UserID      int64
	Username    string
	Email       string
	Role        string
	RedirectURL string
}

// NewAuthResult 依使用者與剛簽發的 token 組出結果
func NewAuthResult(u User, token string) *AuthResult {
	return &AuthResult{
		Token:       token,
		TokenType:   TokenTypeBearer,
		UserID:      u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role.String(),
		RedirectURL: u.Role.RedirectPath(),
	}
}
