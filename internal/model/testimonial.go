package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Testimonial is a user-submitted endorsement with a moderation flag.
// The unique index on UserID enforces one submission per user at the store
// level; the service layer still performs the friendly pre-insert check.
type Testimonial struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex"`
	Role      string    `json:"role" gorm:"size:100;not null"` // submitter's title, e.g. "Volunteer"
	Body      string    `json:"testimonial" gorm:"type:text;not null"`
	Approved  bool      `json:"approved" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
