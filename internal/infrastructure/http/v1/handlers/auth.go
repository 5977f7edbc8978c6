package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain/auth"
	"faktura/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves registration, login and device binding.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	regReq := auth.RegisterRequest{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	}

	if req.DeviceID != "" {
		deviceID, err := id.Parse(req.DeviceID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid device id format").
				WithDetail("field", "deviceId"))
			return
		}
		regReq.DeviceID = &deviceID
	}

	user, err := h.service.Register(ctx, regReq)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(ctx, req.Email, req.Password, req.DeviceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.FromUser(result.User),
	})
}

// AssignDevice handles PUT /users/:id/device - bind a user to a fixed
// point of sale. The bound device overrides the session device during
// sequence resolution.
func (h *AuthHandler) AssignDevice(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.AssignDeviceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var deviceID *id.ID
	if req.DeviceID != nil && *req.DeviceID != "" {
		parsed, err := id.Parse(*req.DeviceID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid device id format").
				WithDetail("field", "deviceId"))
			return
		}
		deviceID = &parsed
	}

	if err := h.service.AssignDevice(ctx, userID, deviceID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "device assignment updated")
}
