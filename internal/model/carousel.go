package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CarouselImage is one slide on the homepage carousel. Image bytes live with
// the external hosting provider; only the URL is stored here.
type CarouselImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title     string    `json:"title" gorm:"size:255"`
	Caption   string    `json:"caption,omitempty" gorm:"size:512"`
	ImageURL  string    `json:"image_url" gorm:"size:512;not null"`
	Position  int       `json:"position" gorm:"not null;default:0;index"`
	Active    bool      `json:"active" gorm:"not null;default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (ci *CarouselImage) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}
