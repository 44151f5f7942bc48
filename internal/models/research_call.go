package models

import (
	"time"

	"gorm.io/gorm"
)

type CallStatus string

const (
	CallStatusDraft     CallStatus = "draft"
	CallStatusOpen      CallStatus = "open"
	CallStatusClosed    CallStatus = "closed"
	CallStatusCompleted CallStatus = "completed"
)

type ResearchCall struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Summary        string         `gorm:"type:text;not null" json:"summary"`
	Abstract       string         `gorm:"type:text" json:"abstract,omitempty"`
	Keywords       StringList     `json:"keywords"`
	CreditRoles    StringList     `json:"credit_roles"`
	Timeline       string         `gorm:"type:varchar(255)" json:"timeline,omitempty"`
	Slug           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Status         CallStatus     `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	PublicationURL string         `gorm:"type:varchar(512)" json:"publication_url,omitempty"`
	LeadAuthorID   uint64         `gorm:"not null" json:"lead_author_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	LeadAuthor   User                  `gorm:"foreignKey:LeadAuthorID" json:"lead_author,omitempty"`
	Applications []CoAuthorApplication `gorm:"foreignKey:CallID" json:"applications,omitempty"`
}
