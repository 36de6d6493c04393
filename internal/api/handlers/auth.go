// Package handlers contains the HTTP handlers for the API
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"facultyauth/internal/auth"
	"facultyauth/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary Faculty login
// @Description Verify a username/password pair against the credential store
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse "Login successful"
// @Failure 400 {object} models.LoginResponse "Missing or malformed input"
// @Failure 401 {object} models.LoginResponse "Invalid credentials"
// @Failure 403 {object} models.LoginResponse "Account not active"
// @Failure 500 {object} models.LoginResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// The struct is populated even when binding validation fails, so the
		// blank field still identifies the right error code.
		switch {
		case strings.TrimSpace(req.Username) == "":
			c.JSON(http.StatusBadRequest, models.LoginResponse{
				Message:   "Username is required",
				ErrorCode: "MISSING_USERNAME",
			})
		case strings.TrimSpace(req.Password) == "":
			c.JSON(http.StatusBadRequest, models.LoginResponse{
				Message:   "Password is required",
				ErrorCode: "MISSING_PASSWORD",
			})
		default:
			c.JSON(http.StatusBadRequest, models.LoginResponse{
				Message:   "Invalid request format",
				ErrorCode: "INVALID_REQUEST",
			})
		}
		return
	}

	account, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			if strings.TrimSpace(req.Username) == "" {
				c.JSON(http.StatusBadRequest, models.LoginResponse{
					Message:   "Username is required",
					ErrorCode: "MISSING_USERNAME",
				})
			} else {
				c.JSON(http.StatusBadRequest, models.LoginResponse{
					Message:   "Password is required",
					ErrorCode: "MISSING_PASSWORD",
				})
			}
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, models.LoginResponse{
				Message:   "Invalid username or password",
				ErrorCode: "INVALID_CREDENTIALS",
			})
		case errors.Is(err, auth.ErrAccountInactive):
			c.JSON(http.StatusForbidden, models.LoginResponse{
				Message:   "Your account is not active yet. Please wait for admin approval.",
				ErrorCode: "ACCOUNT_INACTIVE",
			})
		default:
			c.JSON(http.StatusInternalServerError, models.LoginResponse{
				Message:   "An error occurred during login. Please try again.",
				ErrorCode: "INTERNAL_ERROR",
			})
		}
		return
	}

	summary := account.Summary()
	c.JSON(http.StatusOK, models.LoginResponse{
		Success:  true,
		Message:  "Login successful",
		UserInfo: &summary,
	})
}
