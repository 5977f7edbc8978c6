package context

import (
	"context"
)

// UserContext contains the authenticated session: who is posting and from
// which point of sale. DeviceID is the ambient device of the session; a
// device assigned directly to the user record takes precedence over it
// during sequence resolution.
type UserContext struct {
	UserID    string
	Email     string
	DeviceID  string // point of sale of the active session, may be empty
	IsAdmin   bool
	SessionID string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetDeviceID returns the session device ID from context or empty string.
func GetDeviceID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.DeviceID
	}
	return ""
}
