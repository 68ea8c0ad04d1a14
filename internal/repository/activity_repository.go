package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
)

// ActivityRepository defines audit-trail persistence operations. The trail
// is append-only: there is no update or delete.
type ActivityRepository interface {
	Create(ctx context.Context, a *model.Activity) error
	List(ctx context.Context, offset, limit int) ([]model.Activity, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, a *model.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *activityRepository) List(ctx context.Context, offset, limit int) ([]model.Activity, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Activity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Activity
	if err := r.db.WithContext(ctx).Preload("Actor").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
