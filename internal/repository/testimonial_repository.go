package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
)

// TestimonialRepository defines testimonial persistence operations.
type TestimonialRepository interface {
	Create(ctx context.Context, t *model.Testimonial) error
	Update(ctx context.Context, t *model.Testimonial) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Testimonial, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Testimonial, error)
	List(ctx context.Context, approvedOnly bool, offset, limit int) ([]model.Testimonial, int64, error)
}

type testimonialRepository struct {
	db *gorm.DB
}

// NewTestimonialRepository creates a new testimonial repository.
func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) Create(ctx context.Context, t *model.Testimonial) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *testimonialRepository) Update(ctx context.Context, t *model.Testimonial) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *testimonialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Testimonial{}).Error
}

// FindByID loads the testimonial together with its owner for audit detail.
func (r *testimonialRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Testimonial, error) {
	var t model.Testimonial
	if err := r.db.WithContext(ctx).Preload("User").
		Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *testimonialRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Testimonial, error) {
	var t model.Testimonial
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns one time-descending page plus the total matching count.
func (r *testimonialRepository) List(ctx context.Context, approvedOnly bool, offset, limit int) ([]model.Testimonial, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Testimonial{})
	if approvedOnly {
		query = query.Where("approved = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Testimonial
	if err := query.Preload("User").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
