package handlers

import (
	"errors"
	"net/http"

	"facultyauth/internal/models"
	"facultyauth/internal/registration"

	"github.com/gin-gonic/gin"
)

// RegistrationHandler handles HTTP requests for faculty account registration
type RegistrationHandler struct {
	regService *registration.Service
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(regService *registration.Service) *RegistrationHandler {
	return &RegistrationHandler{regService: regService}
}

// Register godoc
// @Summary Register a faculty account
// @Description Validate the registration form and create a pending, inactive account
// @Tags registration
// @Accept json
// @Produce json
// @Param request body models.RegistrationRequest true "Registration form"
// @Success 201 {object} models.RegistrationResponse "Account created"
// @Failure 400 {object} models.RegistrationResponse "Validation failure"
// @Failure 409 {object} models.RegistrationResponse "Username, email, or faculty ID already registered"
// @Failure 500 {object} models.RegistrationResponse "Internal server error"
// @Router /faculty/register [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.RegistrationResponse{
			Message:   "Invalid request format",
			ErrorCode: "INVALID_REQUEST",
		})
		return
	}

	result, err := h.regService.Register(c.Request.Context(), req)
	if err != nil {
		var regErr *registration.Error
		if errors.As(err, &regErr) {
			status := http.StatusBadRequest
			if registration.IsDuplicateCode(regErr.Code) {
				status = http.StatusConflict
			}
			c.JSON(status, models.RegistrationResponse{
				Message:   regErr.Message,
				ErrorCode: regErr.Code,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.RegistrationResponse{
			Message:   "An unexpected error occurred during registration. Please try again.",
			ErrorCode: "INTERNAL_ERROR",
		})
		return
	}

	c.JSON(http.StatusCreated, models.RegistrationResponse{
		Success:   true,
		Message:   "Faculty account created successfully! Please wait for admin approval.",
		FacultyID: result.ID,
		Username:  result.Username,
		Email:     result.Email,
	})
}

// CheckUsername godoc
// @Summary Check username availability
// @Description Report whether a username is valid and not yet taken
// @Tags registration
// @Produce json
// @Param username query string true "Username to check"
// @Success 200 {object} models.AvailabilityResponse
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /faculty/check-username [get]
func (h *RegistrationHandler) CheckUsername(c *gin.Context) {
	available, message, err := h.regService.UsernameAvailable(c.Request.Context(), c.Query("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error checking username availability"})
		return
	}

	c.JSON(http.StatusOK, models.AvailabilityResponse{
		Available: available,
		Message:   message,
	})
}

// CheckEmail godoc
// @Summary Check email availability
// @Description Report whether an email address is valid and not yet registered
// @Tags registration
// @Produce json
// @Param email query string true "Email to check"
// @Success 200 {object} models.AvailabilityResponse
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /faculty/check-email [get]
func (h *RegistrationHandler) CheckEmail(c *gin.Context) {
	available, message, err := h.regService.EmailAvailable(c.Request.Context(), c.Query("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Error checking email availability"})
		return
	}

	c.JSON(http.StatusOK, models.AvailabilityResponse{
		Available: available,
		Message:   message,
	})
}
