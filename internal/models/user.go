package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	DiscordID string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"discord_id"`
	Username  string         `gorm:"type:varchar(255);not null" json:"username"`
	Email     string         `gorm:"type:varchar(255)" json:"email"`
	AvatarURL string         `gorm:"type:varchar(512)" json:"avatar_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Calls        []ResearchCall        `gorm:"foreignKey:LeadAuthorID" json:"-"`
	Applications []CoAuthorApplication `gorm:"foreignKey:UserID" json:"-"`
}
