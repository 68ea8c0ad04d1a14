package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Setting is one key/value pair of site configuration (contact email,
// social links, hero copy) editable from the admin panel.
type Setting struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Key       string    `json:"key" gorm:"uniqueIndex;size:100;not null"`
	Value     string    `json:"value" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
