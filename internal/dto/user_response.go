// File: internal/dto/user_response.go
package dto

import (
	"time"

	"edu-platform/internal/model"
)

// swagger:model dto.UserResponse
type UserResponse struct {
	ID          int64     `json:"id" example:"1"`
	Username    string    `json:"username" example:"alice"`
	Email       string    `json:"email" example:"alice@example.com"`
	Role        string    `json:"role" example:"STUDENT"`
	RedirectURL string    `json:"redirectUrl" example:"/student-app"`
	CreatedAt   time.Time `json:"created_at" example:"2025-05-01T15:04:05Z07:00"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role.String(),
		RedirectURL: u.Role.RedirectPath(),
		CreatedAt:   u.CreatedAt,
	}
}
