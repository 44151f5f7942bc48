package repository

import (
	"github.com/researchcollab/research-collab-api/internal/models"
	"github.com/researchcollab/research-collab-api/internal/utils"
)

// CallRepository defines the interface for research call data access
type CallRepository interface {
	// Create creates a new research call
	Create(call *models.ResearchCall) error

	// FindByID finds a call by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.ResearchCall, error)

	// FindBySlug finds a call by its slug, with the lead author preloaded
	FindBySlug(slug string) (*models.ResearchCall, error)

	// FindOpenByID finds a call that exists and is currently open
	FindOpenByID(id uint64) (*models.ResearchCall, error)

	// List retrieves calls with filtering and pagination, newest first
	List(filter CallFilter) ([]models.ResearchCall, int64, error)

	// Update updates a call
	Update(call *models.ResearchCall) error
}

// CallFilter holds filtering options for listing research calls
type CallFilter struct {
	LeadAuthorID *uint64
	Status       *models.CallStatus
	Pagination   utils.PaginationParams
}

// ApplicationRepository defines the interface for co-author application data access
type ApplicationRepository interface {
	// Create inserts a new application; a duplicate (call_id, user_id) pair
	// fails with gorm.ErrDuplicatedKey
	Create(application *models.CoAuthorApplication) error

	// FindByID finds an application by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.CoAuthorApplication, error)

	// FindByCallAndUser finds a user's application to a call
	FindByCallAndUser(callID, userID uint64) (*models.CoAuthorApplication, error)

	// List retrieves applications with filtering, newest first
	List(filter ApplicationFilter) ([]models.CoAuthorApplication, error)

	// Decide transitions a still-pending application to the given status;
	// it reports gorm.ErrRecordNotFound when the application is no longer
	// pending
	Decide(id uint64, status models.ApplicationStatus) error
}

// ApplicationFilter holds filtering options for listing applications
type ApplicationFilter struct {
	CallID *uint64
	UserID *uint64
	Status *models.ApplicationStatus
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// UpsertByDiscordID inserts the user or refreshes profile fields when the
	// discord_id already exists; user.ID is populated either way
	UpsertByDiscordID(user *models.User) error
}
