// File: internal/dto/auth_response.go
package dto

import "edu-platform/internal/model"

// AuthResponse 登入與註冊成功的回應
// swagger:model dto.AuthResponse
type AuthResponse struct {
	Token       string `json:"token" example:"eyJhbGciOi..."`
	Type        string `json:"type" example:"Bearer"`
	ID          int64  `json:"id" example:"1"`
	Username    string `json:"username" example:"alice"`
	Email       string `json:"email" example:"alice@example.com"`
	Role        string `json:"role" example:"STUDENT"`
	RedirectURL string `json:"redirectUrl" example:"/student-app"`
}

func NewAuthResponse(r *model.AuthResult) AuthResponse {
	return AuthResponse{
		Token:       r.Token,
		Type:        r.TokenType,
		ID:          r.UserID,
		Username:    r.Username,
		Email:       r.Email,
		Role:        r.Role,
		RedirectURL: r.RedirectURL,
	}
}
