package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	apperrors "github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/repository"
)

const categoriesResource = "categories"

// CategoryService manages content categories. Writes are gated on the
// categories resource; reads are public.
type CategoryService interface {
	Create(ctx context.Context, actor *model.User, name, slug, description, requestIP string) (*model.Category, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, name, slug, description, requestIP string) (*model.Category, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID, requestIP string) error
	List(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	repo     repository.CategoryRepository
	activity ActivityService
	gate     *auth.Gate
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, activity ActivityService, gate *auth.Gate) CategoryService {
	return &categoryService{repo: repo, activity: activity, gate: gate}
}

// slugify derives a URL-safe slug from a display name.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

func (s *categoryService) Create(ctx context.Context, actor *model.User, name, slug, description, requestIP string) (*model.Category, error) {
	if err := s.gate.RequirePermission(actor, categoriesResource, model.ActionCreate); err != nil {
		return nil, err
	}

	if slug == "" {
		slug = slugify(name)
	}
	if existing, err := s.repo.FindBySlug(ctx, slug); err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateCategory
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check category slug: %w", err)
	}

	category := &model.Category{Name: name, Slug: slug, Description: description}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.activity.Log(ctx, actor.ID, model.ActivityCategoryAdd, "created a category", map[string]interface{}{
		"category_id": category.ID.String(),
		"slug":        slug,
		"ip":          requestIP,
	})

	return category, nil
}

func (s *categoryService) Update(ctx context.Context, actor *model.User, id uuid.UUID, name, slug, description, requestIP string) (*model.Category, error) {
	if err := s.gate.RequirePermission(actor, categoriesResource, model.ActionUpdate); err != nil {
		return nil, err
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("fetch category: %w", err)
	}

	if name != "" {
		category.Name = name
	}
	if slug != "" {
		category.Slug = slug
	}
	if description != "" {
		category.Description = description
	}
	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.activity.Log(ctx, actor.ID, model.ActivityCategoryUpdate, "updated a category", map[string]interface{}{
		"category_id": category.ID.String(),
		"ip":          requestIP,
	})

	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, actor *model.User, id uuid.UUID, requestIP string) error {
	if err := s.gate.RequirePermission(actor, categoriesResource, model.ActionDelete); err != nil {
		return err
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("fetch category: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.activity.Log(ctx, actor.ID, model.ActivityCategoryDelete, "deleted a category", map[string]interface{}{
		"category_id": category.ID.String(),
		"slug":        category.Slug,
		"ip":          requestIP,
	})

	return nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}
