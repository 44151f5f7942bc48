package dto

import (
	"time"

	"github.com/researchcollab/research-collab-api/internal/models"
)

// CoAuthorApplicationDTO represents an application in API responses
type CoAuthorApplicationDTO struct {
	ID         uint64                   `json:"id"`
	CallID     uint64                   `json:"call_id"`
	UserID     uint64                   `json:"user_id"`
	Roles      []string                 `json:"roles"`
	Motivation string                   `json:"motivation"`
	OrcidID    string                   `json:"orcid_id,omitempty"`
	Status     models.ApplicationStatus `json:"status"`
	CallTitle  string                   `json:"call_title,omitempty"`
	Applicant  *UserDTO                 `json:"applicant,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// ToCoAuthorApplicationDTO converts an application to DTO. The applicant's
// email is included so lead authors can contact co-authors; the listing
// endpoint itself only requires authentication, so any signed-in user who
// knows a callId can read it.
func ToCoAuthorApplicationDTO(application models.CoAuthorApplication) CoAuthorApplicationDTO {
	dto := CoAuthorApplicationDTO{
		ID:         application.ID,
		CallID:     application.CallID,
		UserID:     application.UserID,
		Roles:      application.Roles,
		Motivation: application.Motivation,
		OrcidID:    application.OrcidID,
		Status:     application.Status,
		CreatedAt:  application.CreatedAt,
		UpdatedAt:  application.UpdatedAt,
	}

	// Include call title if preloaded
	if application.Call.ID != 0 {
		dto.CallTitle = application.Call.Title
	}

	// Include applicant if preloaded
	if application.User.ID != 0 {
		applicant := ToUserDTO(application.User, true)
		dto.Applicant = &applicant
	}

	return dto
}

// ToCoAuthorApplicationDTOs converts a slice of applications
func ToCoAuthorApplicationDTOs(applications []models.CoAuthorApplication) []CoAuthorApplicationDTO {
	dtos := make([]CoAuthorApplicationDTO, len(applications))
	for i, application := range applications {
		dtos[i] = ToCoAuthorApplicationDTO(application)
	}
	return dtos
}
