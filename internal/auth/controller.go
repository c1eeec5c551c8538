package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"wisata/internal/shared/utils/response"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (ctrl *Controller) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := ctrl.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create account", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Account created successfully", resp, nil)
}

func (ctrl *Controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := ctrl.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid email or password", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to sign in", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Signed in successfully", resp, nil)
}

func (ctrl *Controller) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	pair, err := ctrl.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid or expired refresh token", nil, nil)
		case errors.Is(err, ErrUserNotFound):
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Account no longer exists", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to refresh token", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Token refreshed successfully", pair, nil)
}

func (ctrl *Controller) ChangePassword(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	err := ctrl.service.ChangePassword(c.Request.Context(), userID.(string), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Current password is incorrect", nil, nil)
		case errors.Is(err, ErrUserNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to change password", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Password changed successfully", nil, nil)
}

func (ctrl *Controller) GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	profile, err := ctrl.service.Profile(c.Request.Context(), userID.(string))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load profile", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Profile retrieved successfully", profile, nil)
}
