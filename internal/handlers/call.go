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
	"github.com/researchcollab/research-collab-api/internal/services"
	"github.com/researchcollab/research-collab-api/internal/utils"
)

// CallHandler coordinates research call HTTP handlers.
type CallHandler struct {
	callService *services.CallService
}

// NewCallHandler creates a new CallHandler.
func NewCallHandler(callService *services.CallService) *CallHandler {
	return &CallHandler{
		callService: callService,
	}
}

// CreateCall creates a new research call owned by the authenticated user.
func (h *CallHandler) CreateCall(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateCallRequest struct {
		Title       string   `json:"title" binding:"required"`
		Summary     string   `json:"summary" binding:"required"`
		Abstract    string   `json:"abstract"`
		Keywords    []string `json:"keywords" binding:"required"`
		CreditRoles []string `json:"credit_roles" binding:"required"`
		Timeline    string   `json:"timeline"`
	}

	var req CreateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing required fields")
		return
	}

	call, err := h.callService.CreateCall(services.CreateCallInput{
		Title:        req.Title,
		Summary:      req.Summary,
		Abstract:     req.Abstract,
		Keywords:     req.Keywords,
		CreditRoles:  req.CreditRoles,
		Timeline:     req.Timeline,
		LeadAuthorID: userID,
	})
	if err != nil {
		respondCallError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToResearchCallDTO(*call))
}

// ListCalls returns calls filtered by authorId and status, newest first.
func (h *CallHandler) ListCalls(c *gin.Context) {
	input := services.ListCallsInput{}

	if authorIDStr := c.Query("authorId"); authorIDStr != "" {
		authorID, err := strconv.ParseUint(authorIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid authorId")
			return
		}
		input.LeadAuthorID = &authorID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.CallStatus(statusStr)
		input.Status = &status
	}

	pagination := utils.GetPaginationParams(c)
	input.Pagination = pagination

	calls, total, err := h.callService.ListCalls(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch research calls")
		return
	}

	c.JSON(http.StatusOK, dto.ToCallListResponse(calls, pagination.Page, pagination.Limit, total))
}

// GetCallBySlug returns the public detail view of a call.
func (h *CallHandler) GetCallBySlug(c *gin.Context) {
	call, err := h.callService.GetCallBySlug(c.Param("slug"))
	if err != nil {
		respondCallError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResearchCallDTO(*call))
}

// UpdateCall edits an open call. Ownership is checked by
// RequireCallOwnership.
func (h *CallHandler) UpdateCall(c *gin.Context) {
	call, ok := middleware.GetCall(c)
	if !ok {
		apierrors.InternalError(c, "Research call not found in context")
		return
	}

	type UpdateCallRequest struct {
		Title       *string  `json:"title"`
		Summary     *string  `json:"summary"`
		Abstract    *string  `json:"abstract"`
		Keywords    []string `json:"keywords"`
		CreditRoles []string `json:"credit_roles"`
		Timeline    *string  `json:"timeline"`
	}

	var req UpdateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.callService.UpdateCall(call.ID, services.UpdateCallInput{
		Title:       req.Title,
		Summary:     req.Summary,
		Abstract:    req.Abstract,
		Keywords:    req.Keywords,
		CreditRoles: req.CreditRoles,
		Timeline:    req.Timeline,
	})
	if err != nil {
		respondCallError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResearchCallDTO(*updated))
}

// CloseCall closes an open call, optionally recording the publication URL.
func (h *CallHandler) CloseCall(c *gin.Context) {
	call, ok := middleware.GetCall(c)
	if !ok {
		apierrors.InternalError(c, "Research call not found in context")
		return
	}

	type CloseCallRequest struct {
		PublicationURL string `json:"publication_url"`
	}

	var req CloseCallRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	}

	closed, err := h.callService.CloseCall(call.ID, req.PublicationURL)
	if err != nil {
		respondCallError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResearchCallDTO(*closed))
}

func respondCallError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCallTitleRequired),
		errors.Is(err, services.ErrCallSummaryRequired),
		errors.Is(err, services.ErrCallKeywordsRequired),
		errors.Is(err, services.ErrCallRolesRequired),
		errors.Is(err, services.ErrUnknownCreditRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCallNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCallNotOpen):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
