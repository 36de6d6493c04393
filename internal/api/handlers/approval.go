package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"facultyauth/internal/models"
	"facultyauth/internal/registration"
	"facultyauth/internal/repository"

	"github.com/gin-gonic/gin"
)

// ApprovalHandler handles HTTP requests for registration approval and
// account activation
type ApprovalHandler struct {
	regService  *registration.Service
	accountRepo repository.AccountRepository
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(regService *registration.Service, accountRepo repository.AccountRepository) *ApprovalHandler {
	return &ApprovalHandler{regService: regService, accountRepo: accountRepo}
}

func accountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid account id"})
		return 0, false
	}
	return id, true
}

// SetStatus godoc
// @Summary Decide a pending registration
// @Description Move a pending account to approved or rejected
// @Tags faculty
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body models.StatusChangeRequest true "Target status"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Account not found"
// @Failure 409 {object} models.ErrorResponse "Registration already decided"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /faculty/{id}/status [patch]
func (h *ApprovalHandler) SetStatus(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req models.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "status must be approved or rejected"})
		return
	}

	err := h.regService.SetRegistrationStatus(c.Request.Context(), id, models.RegistrationStatus(req.Status), req.ApprovedBy)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "account not found"})
		case errors.Is(err, repository.ErrInvalidStateTransition):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "registration has already been decided"})
		default:
			var regErr *registration.Error
			if errors.As(err, &regErr) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: regErr.Message})
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update registration status"})
		}
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Registration status updated"})
}

// SetActivation godoc
// @Summary Activate or deactivate an account
// @Description Flip whether the stored credentials may authenticate
// @Tags faculty
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body models.ActivationRequest true "Target activation state"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Account not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /faculty/{id}/activation [patch]
func (h *ApprovalHandler) SetActivation(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req models.ActivationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "active is required"})
		return
	}

	if err := h.regService.SetActivation(c.Request.Context(), id, *req.Active); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update activation"})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Account activation updated"})
}

// List godoc
// @Summary List faculty accounts
// @Description List accounts, optionally filtered by registration status or department
// @Tags faculty
// @Produce json
// @Param status query string false "Registration status filter" Enums(pending, approved, rejected)
// @Param department query string false "Department filter" Enums(BCA, BBA, BCOM)
// @Param limit query int false "Maximum number of results"
// @Param offset query int false "Result offset"
// @Success 200 {array} models.Account
// @Failure 400 {object} models.ErrorResponse "Invalid filter"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /faculty [get]
func (h *ApprovalHandler) List(c *gin.Context) {
	var filter repository.AccountFilter

	if raw := c.Query("status"); raw != "" {
		status := models.RegistrationStatus(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid status filter"})
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("department"); raw != "" {
		department := models.Department(raw)
		if !department.Valid() {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid department filter"})
			return
		}
		filter.Department = &department
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid limit"})
			return
		}
		filter.Limit = &limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid offset"})
			return
		}
		filter.Offset = &offset
	}

	accounts, err := h.accountRepo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list accounts"})
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}

	c.JSON(http.StatusOK, accounts)
}
