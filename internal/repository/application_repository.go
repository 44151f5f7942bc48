package repository

import (
	"github.com/researchcollab/research-collab-api/internal/models"
	"gorm.io/gorm"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create inserts a new application. The composite unique index on
// (call_id, user_id) turns a concurrent double-submission into
// gorm.ErrDuplicatedKey.
func (r *GormApplicationRepository) Create(application *models.CoAuthorApplication) error {
	return r.db.Create(application).Error
}

// FindByID finds an application by ID with optional preloading
func (r *GormApplicationRepository) FindByID(id uint64, preload ...string) (*models.CoAuthorApplication, error) {
	var application models.CoAuthorApplication
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&application, id).Error; err != nil {
		return nil, err
	}

	return &application, nil
}

// FindByCallAndUser finds a user's application to a call
func (r *GormApplicationRepository) FindByCallAndUser(callID, userID uint64) (*models.CoAuthorApplication, error) {
	var application models.CoAuthorApplication
	if err := r.db.Where("call_id = ? AND user_id = ?", callID, userID).
		First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// List retrieves applications with filtering, newest first, with the
// applicant preloaded
func (r *GormApplicationRepository) List(filter ApplicationFilter) ([]models.CoAuthorApplication, error) {
	var applications []models.CoAuthorApplication

	query := r.db.Model(&models.CoAuthorApplication{})

	if filter.CallID != nil {
		query = query.Where("call_id = ?", *filter.CallID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Order("created_at DESC").
		Preload("User").
		Preload("Call").
		Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

// Decide conditionally moves a pending application to the given status. The
// WHERE on status makes concurrent decisions race-proof: the first write
// wins and the loser affects zero rows.
func (r *GormApplicationRepository) Decide(id uint64, status models.ApplicationStatus) error {
	result := r.db.Model(&models.CoAuthorApplication{}).
		Where("id = ? AND status = ?", id, models.ApplicationStatusPending).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
