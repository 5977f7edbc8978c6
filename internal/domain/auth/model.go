// Package auth provides authentication and the user/device directory.
package auth

import (
	"context"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
)

// User is an operator account. A user may carry a fixed point-of-sale
// assignment; when set it overrides the session device during numbering.
type User struct {
	entity.BaseEntity

	Email        string `db:"email" json:"email"`
	Name         string `db:"name" json:"name"`
	PasswordHash string `db:"password_hash" json:"-"`

	// DeviceID is the point of sale assigned to this user (nullable)
	DeviceID *id.ID `db:"device_id" json:"deviceId,omitempty"`

	IsAdmin bool `db:"is_admin" json:"isAdmin"`
}

// NewUser creates a new User.
func NewUser(email, name string) *User {
	return &User{
		BaseEntity: entity.NewBaseEntity(),
		Email:      email,
		Name:       name,
	}
}

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if u.Email == "" {
		return apperror.NewValidation("email is required").
			WithDetail("field", "email")
	}
	if u.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
