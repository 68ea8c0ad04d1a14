package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	apperrors "github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/repository"
)

const carouselResource = "carousel"

// CarouselInput carries the editable fields of a carousel slide.
type CarouselInput struct {
	Title    string
	Caption  string
	ImageURL string
	Position int
	Active   *bool
}

// CarouselService manages the homepage carousel slides.
type CarouselService interface {
	Create(ctx context.Context, actor *model.User, in CarouselInput, requestIP string) (*model.CarouselImage, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, in CarouselInput, requestIP string) (*model.CarouselImage, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID, requestIP string) error
	List(ctx context.Context, activeOnly bool) ([]model.CarouselImage, error)
}

type carouselService struct {
	repo     repository.CarouselRepository
	activity ActivityService
	gate     *auth.Gate
}

// NewCarouselService creates a new carousel service.
func NewCarouselService(repo repository.CarouselRepository, activity ActivityService, gate *auth.Gate) CarouselService {
	return &carouselService{repo: repo, activity: activity, gate: gate}
}

func (s *carouselService) Create(ctx context.Context, actor *model.User, in CarouselInput, requestIP string) (*model.CarouselImage, error) {
	if err := s.gate.RequirePermission(actor, carouselResource, model.ActionCreate); err != nil {
		return nil, err
	}

	img := &model.CarouselImage{
		Title:    in.Title,
		Caption:  in.Caption,
		ImageURL: in.ImageURL,
		Position: in.Position,
		Active:   true,
	}
	if in.Active != nil {
		img.Active = *in.Active
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, fmt.Errorf("create carousel image: %w", err)
	}

	s.activity.Log(ctx, actor.ID, model.ActivityCarouselAdd, "added a carousel image", map[string]interface{}{
		"image_id": img.ID.String(),
		"ip":       requestIP,
	})

	return img, nil
}

func (s *carouselService) Update(ctx context.Context, actor *model.User, id uuid.UUID, in CarouselInput, requestIP string) (*model.CarouselImage, error) {
	if err := s.gate.RequirePermission(actor, carouselResource, model.ActionUpdate); err != nil {
		return nil, err
	}

	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCarouselImageNotFound
		}
		return nil, fmt.Errorf("fetch carousel image: %w", err)
	}

	if in.Title != "" {
		img.Title = in.Title
	}
	if in.Caption != "" {
		img.Caption = in.Caption
	}
	if in.ImageURL != "" {
		img.ImageURL = in.ImageURL
	}
	if in.Position != 0 {
		img.Position = in.Position
	}
	if in.Active != nil {
		img.Active = *in.Active
	}
	if err := s.repo.Update(ctx, img); err != nil {
		return nil, fmt.Errorf("update carousel image: %w", err)
	}

	s.activity.Log(ctx, actor.ID, model.ActivityCarouselUpdate, "updated a carousel image", map[string]interface{}{
		"image_id": img.ID.String(),
		"ip":       requestIP,
	})

	return img, nil
}

func (s *carouselService) Delete(ctx context.Context, actor *model.User, id uuid.UUID, requestIP string) error {
	if err := s.gate.RequirePermission(actor, carouselResource, model.ActionDelete); err != nil {
		return err
	}

	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCarouselImageNotFound
		}
		return fmt.Errorf("fetch carousel image: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete carousel image: %w", err)
	}

	s.activity.Log(ctx, actor.ID, model.ActivityCarouselDelete, "removed a carousel image", map[string]interface{}{
		"image_id":  img.ID.String(),
		"image_url": img.ImageURL,
		"ip":        requestIP,
	})

	return nil
}

func (s *carouselService) List(ctx context.Context, activeOnly bool) ([]model.CarouselImage, error) {
	return s.repo.List(ctx, activeOnly)
}
