package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/researchcollab/research-collab-api/internal/dto"
	apierrors "github.com/researchcollab/research-collab-api/internal/errors"
	"github.com/researchcollab/research-collab-api/internal/middleware"
	"github.com/researchcollab/research-collab-api/internal/models"
	"github.com/researchcollab/research-collab-api/internal/repository"
	"github.com/researchcollab/research-collab-api/internal/services"
)

// ApplicationHandler coordinates co-author application HTTP handlers.
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		appService: appService,
	}
}

// SubmitApplication submits the authenticated user's application to a call.
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SubmitRequest struct {
		CallID     uint64   `json:"call_id" binding:"required"`
		Roles      []string `json:"roles" binding:"required"`
		Motivation string   `json:"motivation" binding:"required"`
		OrcidID    string   `json:"orcid_id"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing required fields")
		return
	}

	application, err := h.appService.SubmitApplication(services.SubmitApplicationInput{
		CallID:     req.CallID,
		UserID:     userID,
		Roles:      req.Roles,
		Motivation: req.Motivation,
		OrcidID:    req.OrcidID,
	})
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCoAuthorApplicationDTO(*application))
}

// ListApplications returns applications filtered by callId, userId and
// status, newest first.
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	filter := repository.ApplicationFilter{}

	if callIDStr := c.Query("callId"); callIDStr != "" {
		callID, err := strconv.ParseUint(callIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid callId")
			return
		}
		filter.CallID = &callID
	}

	if userIDStr := c.Query("userId"); userIDStr != "" {
		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid userId")
			return
		}
		filter.UserID = &userID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ApplicationStatus(statusStr)
		filter.Status = &status
	}

	applications, err := h.appService.ListApplications(filter)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": dto.ToCoAuthorApplicationDTOs(applications),
	})
}

// UpdateApplicationStatus accepts or rejects a pending application. Only the
// call's lead author may decide.
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	applicationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid application ID")
		return
	}

	type UpdateStatusRequest struct {
		Status models.ApplicationStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid parameters")
		return
	}

	application, err := h.appService.SetStatus(applicationID, req.Status, userID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCoAuthorApplicationDTO(*application))
}

func respondApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrApplicationRolesRequired),
		errors.Is(err, services.ErrUnknownCreditRole),
		errors.Is(err, services.ErrMotivationRequired),
		errors.Is(err, services.ErrInvalidApplicationStatus),
		errors.Is(err, services.ErrApplicationFilterRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCallNotFoundOrClosed),
		errors.Is(err, services.ErrApplicationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyApplied),
		errors.Is(err, services.ErrApplicationAlreadyDecided),
		errors.Is(err, services.ErrOwnCallApplication):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotCallLeadAuthor):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
