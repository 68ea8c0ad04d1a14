package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
)

// DonationRepository defines donation persistence operations.
type DonationRepository interface {
	Create(ctx context.Context, d *model.Donation) error
	List(ctx context.Context, offset, limit int) ([]model.Donation, int64, error)
	Count(ctx context.Context) (int64, error)
	SumAmount(ctx context.Context) (decimal.Decimal, error)
}

type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository.
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, d *model.Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *donationRepository) List(ctx context.Context, offset, limit int) ([]model.Donation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Donation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Donation
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *donationRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Donation{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// SumAmount totals every recorded donation.
func (r *donationRepository) SumAmount(ctx context.Context) (decimal.Decimal, error) {
	var sum sql.NullString
	if err := r.db.WithContext(ctx).Model(&model.Donation{}).
		Select("SUM(amount)").Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(sum.String)
}
