package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Donation records a completed contribution. Gateway processing happens with
// the external payment provider; this row is the durable receipt.
type Donation struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	DonorName  string          `json:"donor_name" gorm:"size:255"`
	DonorEmail string          `json:"donor_email" gorm:"size:255;index"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Currency   string          `json:"currency" gorm:"size:3;not null;default:'KES'"`
	Message    string          `json:"message,omitempty" gorm:"type:text"`
	Anonymous  bool            `json:"anonymous" gorm:"not null;default:false"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
