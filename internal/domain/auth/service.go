package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/pkg/logger"
)

// Service provides authentication and the user/device directory.
type Service struct {
	repo Repository
	jwt  *JWTService
}

// NewService creates a new auth service.
func NewService(repo Repository, jwtService *JWTService) *Service {
	return &Service{repo: repo, jwt: jwtService}
}

// RegisterRequest holds data for user creation.
type RegisterRequest struct {
	Email    string
	Name     string
	Password string
	DeviceID *id.ID
	IsAdmin  bool
}

// Register creates a new user with a hashed password.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if req.Password == "" || len(req.Password) < 8 {
		return nil, apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}

	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, apperror.NewDuplicate("user", "email", req.Email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	user := NewUser(req.Email, req.Name)
	user.PasswordHash = string(passwordHash)
	user.DeviceID = req.DeviceID
	user.IsAdmin = req.IsAdmin

	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// LoginResult carries the issued session token.
type LoginResult struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}

// Login verifies credentials and issues a session token.
// The deviceID parameter is the point of sale the session is opened on;
// it travels inside the token and becomes the ambient device for numbering.
func (s *Service) Login(ctx context.Context, email, password, deviceID string) (*LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user.ID.String(), user.Email, deviceID, user.IsAdmin)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// AssignDevice binds a user to a fixed point of sale.
func (s *Service) AssignDevice(ctx context.Context, userID id.ID, deviceID *id.ID) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	user.DeviceID = deviceID
	return s.repo.Update(ctx, user)
}

// DeviceForUser implements the numbering directory contract: the device
// assigned to the user record, or nil when the user has none (the caller
// then falls back to the session device).
func (s *Service) DeviceForUser(ctx context.Context, userID string) (*id.ID, error) {
	uid, err := id.Parse(userID)
	if err != nil {
		return nil, nil
	}

	user, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return user.DeviceID, nil
}
