package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobtracker/internal/app"
	"jobtracker/internal/model"
	"jobtracker/internal/transport/http/middleware"
	"jobtracker/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	FullName string `json:"full_name" binding:"max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	user, err := h.authService.Register(app.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmailExists):
			response.Error(c, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, app.ErrValidation):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusBadRequest, "error registering user")
		}
		return
	}

	response.Created(c, "User registered successfully", userView(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	result, err := h.authService.Login(app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, app.ErrAccountDisabled):
			response.Error(c, http.StatusUnauthorized, "User account is disabled")
		default:
			response.Error(c, http.StatusInternalServerError, "error during login")
		}
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":  userView(result.User),
		"token": result.Token,
	})
}

// Profile prefers the bearer token's subject; the user_id query parameter
// remains as a fallback for unauthenticated callers.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == nil {
		raw := c.Query("user_id")
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, "user_id or bearer token required")
			return
		}
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid user_id parameter")
			return
		}
		id := uint(parsed)
		userID = &id
	}

	user, err := h.authService.GetUserByID(*userID)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "error retrieving profile")
		return
	}

	response.OK(c, "Profile retrieved successfully", userView(user))
}

func userView(user *model.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"full_name":  user.FullName,
		"is_active":  user.IsActive,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}
