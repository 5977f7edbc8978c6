package dto

import (
	"time"

	"faktura/internal/domain/auth"
)

// RegisterRequest for user registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	DeviceID string `json:"deviceId"`
	IsAdmin  bool   `json:"isAdmin"`
}

// LoginRequest for session opening. DeviceID is the point of sale the
// session is opened on; it rides inside the token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	DeviceID string `json:"deviceId"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// AssignDeviceRequest binds a user to a fixed point of sale.
// A null deviceId clears the binding.
type AssignDeviceRequest struct {
	DeviceID *string `json:"deviceId"`
}

// UserResponse contains user fields.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	DeviceID string `json:"deviceId,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}

// FromUser creates UserResponse from auth.User.
func FromUser(u *auth.User) UserResponse {
	resp := UserResponse{
		ID:      u.ID.String(),
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
	}
	if u.DeviceID != nil {
		resp.DeviceID = u.DeviceID.String()
	}
	return resp
}
