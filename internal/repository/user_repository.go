package repository

import (
	"github.com/researchcollab/research-collab-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertByDiscordID inserts the user or refreshes the profile fields when the
// discord_id is already known, then loads the stored row so user.ID is set.
func (r *GormUserRepository) UpsertByDiscordID(user *models.User) error {
	err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "discord_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "email", "avatar_url", "updated_at"}),
		}).
		Create(user).Error
	if err != nil {
		return err
	}

	return r.db.Where("discord_id = ?", user.DiscordID).First(user).Error
}
