package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// RegisterRequest creates a candidate or employer account. Admins are
// seeded, never registered.
type RegisterRequest struct {
	FirstName string          `json:"firstName" validate:"required,max=100"`
	LastName  string          `json:"lastName" validate:"required,max=100"`
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=6"`
	Role      models.UserRole `json:"role" validate:"required,is-user-role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyEmployerRequest resolves a pending employer account.
type VerifyEmployerRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type RegisterResponse struct {
	User UserResponse `json:"user"`
	// Token is empty for employers, who stay pending until approved.
	Token string `json:"token,omitempty"`
}

type UserResponse struct {
	ID        string            `json:"id"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Email     string            `json:"email"`
	Role      models.UserRole   `json:"role"`
	Status    models.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}
