package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
)

// CarouselRepository defines carousel image persistence operations.
type CarouselRepository interface {
	Create(ctx context.Context, img *model.CarouselImage) error
	Update(ctx context.Context, img *model.CarouselImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CarouselImage, error)
	List(ctx context.Context, activeOnly bool) ([]model.CarouselImage, error)
}

type carouselRepository struct {
	db *gorm.DB
}

// NewCarouselRepository creates a new carousel repository.
func NewCarouselRepository(db *gorm.DB) CarouselRepository {
	return &carouselRepository{db: db}
}

func (r *carouselRepository) Create(ctx context.Context, img *model.CarouselImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *carouselRepository) Update(ctx context.Context, img *model.CarouselImage) error {
	return r.db.WithContext(ctx).Save(img).Error
}

func (r *carouselRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CarouselImage{}).Error
}

func (r *carouselRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CarouselImage, error) {
	var img model.CarouselImage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&img).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *carouselRepository) List(ctx context.Context, activeOnly bool) ([]model.CarouselImage, error) {
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var imgs []model.CarouselImage
	if err := query.Order("position ASC").Find(&imgs).Error; err != nil {
		return nil, err
	}
	return imgs, nil
}
