package repository

import (
	"github.com/researchcollab/research-collab-api/internal/database"
	"github.com/researchcollab/research-collab-api/internal/models"
	"gorm.io/gorm"
)

// GormCallRepository is a GORM implementation of CallRepository
type GormCallRepository struct {
	db *gorm.DB
}

// NewCallRepository creates a new CallRepository
func NewCallRepository(db *gorm.DB) CallRepository {
	return &GormCallRepository{db: db}
}

// Create creates a new research call
func (r *GormCallRepository) Create(call *models.ResearchCall) error {
	return r.db.Create(call).Error
}

// FindByID finds a call by ID with optional preloading
func (r *GormCallRepository) FindByID(id uint64, preload ...string) (*models.ResearchCall, error) {
	var call models.ResearchCall
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&call, id).Error; err != nil {
		return nil, err
	}

	return &call, nil
}

// FindBySlug finds a call by its slug, with the lead author preloaded
func (r *GormCallRepository) FindBySlug(slug string) (*models.ResearchCall, error) {
	var call models.ResearchCall
	if err := r.db.Preload("LeadAuthor").
		Where("slug = ?", slug).
		First(&call).Error; err != nil {
		return nil, err
	}
	return &call, nil
}

// FindOpenByID finds a call that exists and is currently open. A call in any
// other status is indistinguishable from a missing one to the caller.
func (r *GormCallRepository) FindOpenByID(id uint64) (*models.ResearchCall, error) {
	var call models.ResearchCall
	if err := r.db.Preload("LeadAuthor").
		Where("id = ? AND status = ?", id, models.CallStatusOpen).
		First(&call).Error; err != nil {
		return nil, err
	}
	return &call, nil
}

// List retrieves calls with filtering and pagination, newest first
func (r *GormCallRepository) List(filter CallFilter) ([]models.ResearchCall, int64, error) {
	var calls []models.ResearchCall

	query := r.db.Model(&models.ResearchCall{})

	if filter.LeadAuthorID != nil {
		query = query.Where("lead_author_id = ?", *filter.LeadAuthorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")

	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	if err := listQuery.Preload("LeadAuthor").Find(&calls).Error; err != nil {
		return nil, 0, err
	}

	return calls, total, nil
}

// Update updates a call
func (r *GormCallRepository) Update(call *models.ResearchCall) error {
	return r.db.Save(call).Error
}
