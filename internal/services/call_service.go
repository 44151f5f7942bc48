package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/researchcollab/research-collab-api/internal/credit"
	"github.com/researchcollab/research-collab-api/internal/models"
	"github.com/researchcollab/research-collab-api/internal/notify"
	"github.com/researchcollab/research-collab-api/internal/repository"
	"github.com/researchcollab/research-collab-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrCallTitleRequired    = errors.New("title is required")
	ErrCallSummaryRequired  = errors.New("summary is required")
	ErrCallKeywordsRequired = errors.New("at least one keyword is required")
	ErrCallRolesRequired    = errors.New("at least one CRediT role is required")
	ErrUnknownCreditRole    = errors.New("unknown CRediT role")
	ErrCallNotFound         = errors.New("research call not found")
	ErrCallNotOpen          = errors.New("research call is not open")
)

// CallService handles research call business logic.
type CallService struct {
	callRepo   repository.CallRepository
	dispatcher *notify.Dispatcher
	baseURL    string
}

// NewCallService creates a new CallService.
func NewCallService(callRepo repository.CallRepository, dispatcher *notify.Dispatcher, baseURL string) *CallService {
	return &CallService{
		callRepo:   callRepo,
		dispatcher: dispatcher,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// CreateCallInput represents input for creating a research call.
type CreateCallInput struct {
	Title        string
	Summary      string
	Abstract     string
	Keywords     []string
	CreditRoles  []string
	Timeline     string
	LeadAuthorID uint64
}

// CreateCall validates the input, assigns the slug, persists the call as open
// and announces it to the configured channel. Announcement failure never
// fails the creation.
func (s *CallService) CreateCall(input CreateCallInput) (*models.ResearchCall, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrCallTitleRequired
	}
	if strings.TrimSpace(input.Summary) == "" {
		return nil, ErrCallSummaryRequired
	}
	if len(input.Keywords) == 0 {
		return nil, ErrCallKeywordsRequired
	}
	if len(input.CreditRoles) == 0 {
		return nil, ErrCallRolesRequired
	}
	if invalid := credit.InvalidIDs(input.CreditRoles); len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCreditRole, strings.Join(invalid, ", "))
	}

	call := &models.ResearchCall{
		Title:        input.Title,
		Summary:      input.Summary,
		Abstract:     input.Abstract,
		Keywords:     models.StringList(input.Keywords),
		CreditRoles:  models.StringList(input.CreditRoles),
		Timeline:     input.Timeline,
		Slug:         utils.GenerateSlug(input.Title),
		Status:       models.CallStatusOpen,
		LeadAuthorID: input.LeadAuthorID,
	}

	if err := s.callRepo.Create(call); err != nil {
		return nil, fmt.Errorf("failed to create research call: %w", err)
	}

	s.dispatcher.AnnounceCall(notify.CallAnnouncement{
		Title:   call.Title,
		Summary: call.Summary,
		URL:     fmt.Sprintf("%s/calls/%s", s.baseURL, call.Slug),
	})

	return call, nil
}

// ListCallsInput represents filters for listing calls.
type ListCallsInput struct {
	LeadAuthorID *uint64
	Status       *models.CallStatus
	Pagination   utils.PaginationParams
}

// ListCalls returns calls matching the filters, newest first.
func (s *CallService) ListCalls(input ListCallsInput) ([]models.ResearchCall, int64, error) {
	calls, total, err := s.callRepo.List(repository.CallFilter{
		LeadAuthorID: input.LeadAuthorID,
		Status:       input.Status,
		Pagination:   input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list research calls: %w", err)
	}
	return calls, total, nil
}

// GetCallBySlug returns the call for a public detail page.
func (s *CallService) GetCallBySlug(slug string) (*models.ResearchCall, error) {
	call, err := s.callRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCallNotFound
		}
		return nil, fmt.Errorf("failed to find research call: %w", err)
	}
	return call, nil
}

// UpdateCallInput represents the editable fields of an open call. The slug
// never changes once assigned.
type UpdateCallInput struct {
	Title       *string
	Summary     *string
	Abstract    *string
	Keywords    []string
	CreditRoles []string
	Timeline    *string
}

// UpdateCall edits a call while it is open.
func (s *CallService) UpdateCall(callID uint64, input UpdateCallInput) (*models.ResearchCall, error) {
	call, err := s.callRepo.FindByID(callID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCallNotFound
		}
		return nil, fmt.Errorf("failed to find research call: %w", err)
	}

	if call.Status != models.CallStatusOpen {
		return nil, ErrCallNotOpen
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrCallTitleRequired
		}
		call.Title = *input.Title
	}
	if input.Summary != nil {
		if strings.TrimSpace(*input.Summary) == "" {
			return nil, ErrCallSummaryRequired
		}
		call.Summary = *input.Summary
	}
	if input.Abstract != nil {
		call.Abstract = *input.Abstract
	}
	if input.Keywords != nil {
		if len(input.Keywords) == 0 {
			return nil, ErrCallKeywordsRequired
		}
		call.Keywords = models.StringList(input.Keywords)
	}
	if input.CreditRoles != nil {
		if len(input.CreditRoles) == 0 {
			return nil, ErrCallRolesRequired
		}
		if invalid := credit.InvalidIDs(input.CreditRoles); len(invalid) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCreditRole, strings.Join(invalid, ", "))
		}
		call.CreditRoles = models.StringList(input.CreditRoles)
	}
	if input.Timeline != nil {
		call.Timeline = *input.Timeline
	}

	if err := s.callRepo.Update(call); err != nil {
		return nil, fmt.Errorf("failed to update research call: %w", err)
	}

	return call, nil
}

// CloseCall transitions an open call to closed, optionally recording the
// publication URL. There is no transition out of closed.
func (s *CallService) CloseCall(callID uint64, publicationURL string) (*models.ResearchCall, error) {
	call, err := s.callRepo.FindByID(callID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCallNotFound
		}
		return nil, fmt.Errorf("failed to find research call: %w", err)
	}

	if call.Status != models.CallStatusOpen {
		return nil, ErrCallNotOpen
	}

	call.Status = models.CallStatusClosed
	if publicationURL != "" {
		call.PublicationURL = publicationURL
	}

	if err := s.callRepo.Update(call); err != nil {
		return nil, fmt.Errorf("failed to close research call: %w", err)
	}

	return call, nil
}
