package dto

import (
	"time"

	"github.com/researchcollab/research-collab-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ResearchCallDTO represents a research call in API responses
type ResearchCallDTO struct {
	ID             uint64            `json:"id"`
	Title          string            `json:"title"`
	Summary        string            `json:"summary"`
	Abstract       string            `json:"abstract,omitempty"`
	Keywords       []string          `json:"keywords"`
	CreditRoles    []string          `json:"credit_roles"`
	Timeline       string            `json:"timeline,omitempty"`
	Slug           string            `json:"slug"`
	Status         models.CallStatus `json:"status"`
	PublicationURL string            `json:"publication_url,omitempty"`
	LeadAuthorID   uint64            `json:"lead_author_id"`
	LeadAuthor     *UserDTO          `json:"lead_author,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// CallListResponse represents a paginated list of research calls
type CallListResponse struct {
	Calls      []ResearchCallDTO `json:"calls"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO. The email is only included
// when includeEmail is set (it is the lead author's contact, not public data).
func ToUserDTO(user models.User, includeEmail bool) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
	}
	if includeEmail {
		dto.Email = user.Email
	}
	return dto
}

// ToResearchCallDTO converts a ResearchCall model to ResearchCallDTO
func ToResearchCallDTO(call models.ResearchCall) ResearchCallDTO {
	dto := ResearchCallDTO{
		ID:             call.ID,
		Title:          call.Title,
		Summary:        call.Summary,
		Abstract:       call.Abstract,
		Keywords:       call.Keywords,
		CreditRoles:    call.CreditRoles,
		Timeline:       call.Timeline,
		Slug:           call.Slug,
		Status:         call.Status,
		PublicationURL: call.PublicationURL,
		LeadAuthorID:   call.LeadAuthorID,
		CreatedAt:      call.CreatedAt,
		UpdatedAt:      call.UpdatedAt,
	}

	// Include lead author if preloaded
	if call.LeadAuthor.ID != 0 {
		author := ToUserDTO(call.LeadAuthor, false)
		dto.LeadAuthor = &author
	}

	return dto
}

// ToCallListResponse converts a slice of calls to CallListResponse
func ToCallListResponse(calls []models.ResearchCall, page, pageSize int, totalCount int64) CallListResponse {
	items := make([]ResearchCallDTO, len(calls))
	for i, call := range calls {
		items[i] = ToResearchCallDTO(call)
	}

	return CallListResponse{
		Calls:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
