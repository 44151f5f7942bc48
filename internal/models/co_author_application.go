package models

import (
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// CoAuthorApplication is one user's application to join one research call.
// The composite unique index makes concurrent double-submission a
// duplicate-key error instead of a silent second row.
type CoAuthorApplication struct {
	ID         uint64            `gorm:"primarykey" json:"id"`
	CallID     uint64            `gorm:"not null;uniqueIndex:idx_applications_call_user" json:"call_id"`
	UserID     uint64            `gorm:"not null;uniqueIndex:idx_applications_call_user" json:"user_id"`
	Roles      StringList        `json:"roles"`
	Motivation string            `gorm:"type:text;not null" json:"motivation"`
	OrcidID    string            `gorm:"type:varchar(64)" json:"orcid_id,omitempty"`
	Status     ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	// Relations
	Call ResearchCall `gorm:"foreignKey:CallID" json:"call,omitempty"`
	User User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
