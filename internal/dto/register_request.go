// File: internal/dto/register_request.go
package dto

// swagger:model dto.RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50" example:"alice"`
	Email    string `json:"email" validate:"required,email,max=100" example:"alice@example.com"`
	Password string `json:"password" validate:"required,max=72" example:"Secret123!"`
	// role 不分大小寫：STUDENT / TEACHER / ADMIN
	Role string `json:"role" validate:"required" example:"STUDENT"`
}
