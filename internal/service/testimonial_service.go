package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	apperrors "github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/repository"
)

// testimonialListKeyPrefix scopes every cached listing page. Keys carry the
// full (filter, page, limit) tuple so one query shape can never serve
// another; invalidation sweeps the whole prefix.
const testimonialListKeyPrefix = "testimonials:list:"

// TestimonialPage is one cached/served page of testimonials.
type TestimonialPage struct {
	Testimonials []model.Testimonial `json:"testimonials"`
	Pagination   Pagination          `json:"pagination"`
}

// TestimonialService orchestrates the moderation workflow: authenticated
// submission, admin approval and deletion with audit records, and a cached
// read path.
type TestimonialService interface {
	Submit(ctx context.Context, actor *model.User, role, body string) (*model.Testimonial, error)
	Approve(ctx context.Context, actor *model.User, id uuid.UUID, requestIP string) (*model.Testimonial, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID, requestIP string) (uuid.UUID, error)
	List(ctx context.Context, actor *model.User, approvedOnly bool, page, limit int) (*TestimonialPage, error)
}

type testimonialService struct {
	repo     repository.TestimonialRepository
	activity ActivityService
	gate     *auth.Gate
	cache    Cache
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewTestimonialService creates a new testimonial service.
func NewTestimonialService(
	repo repository.TestimonialRepository,
	activity ActivityService,
	gate *auth.Gate,
	cache Cache,
	cacheTTL time.Duration,
	log zerolog.Logger,
) TestimonialService {
	return &testimonialService{
		repo:     repo,
		activity: activity,
		gate:     gate,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func listCacheKey(approvedOnly bool, page, limit int) string {
	return fmt.Sprintf("%s%t:%d:%d", testimonialListKeyPrefix, approvedOnly, page, limit)
}

// Submit creates the caller's testimonial. Admin submissions go live
// immediately; everyone else starts pending. One testimonial per user: the
// store's unique index backs up the pre-insert check.
func (s *testimonialService) Submit(ctx context.Context, actor *model.User, role, body string) (*model.Testimonial, error) {
	if err := s.gate.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUserID(ctx, actor.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing testimonial: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateTestimonial
	}

	t := &model.Testimonial{
		UserID:   actor.ID,
		Role:     role,
		Body:     body,
		Approved: actor.IsAdmin(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateTestimonial
		}
		return nil, fmt.Errorf("create testimonial: %w", err)
	}

	s.activity.Log(ctx, actor.ID, model.ActivityTestimonialAdd, "submitted a testimonial", map[string]interface{}{
		"testimonial_id": t.ID.String(),
		"approved":       t.Approved,
	})

	// No listing-cache invalidation on submit: pending entries are invisible
	// publicly and the admin listing refreshes within the cache TTL.
	return t, nil
}

// Approve flips a pending testimonial live. Approval is a one-way
// transition; approving twice is a conflict and touches nothing.
func (s *testimonialService) Approve(ctx context.Context, actor *model.User, id uuid.UUID, requestIP string) (*model.Testimonial, error) {
	if err := s.gate.RequireAdmin(actor); err != nil {
		return nil, err
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestimonialNotFound
		}
		return nil, fmt.Errorf("fetch testimonial: %w", err)
	}
	if t.Approved {
		return nil, apperrors.ErrAlreadyApproved
	}

	t.Approved = true
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("approve testimonial: %w", err)
	}

	// Post-commit steps are best-effort: the approval stands even if the
	// audit append or cache sweep fails.
	s.activity.Log(ctx, actor.ID, model.ActivityTestimonialApprove, "approved a testimonial", map[string]interface{}{
		"testimonial_id": t.ID.String(),
		"old_status":     false,
		"new_status":     true,
		"ip":             requestIP,
	})
	s.invalidateListings(ctx)

	return t, nil
}

// Delete removes a testimonial entirely and records who it belonged to.
func (s *testimonialService) Delete(ctx context.Context, actor *model.User, id uuid.UUID, requestIP string) (uuid.UUID, error) {
	if err := s.gate.RequireAdmin(actor); err != nil {
		return uuid.Nil, err
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperrors.ErrTestimonialNotFound
		}
		return uuid.Nil, fmt.Errorf("fetch testimonial: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return uuid.Nil, fmt.Errorf("delete testimonial: %w", err)
	}

	s.activity.Log(ctx, actor.ID, model.ActivityTestimonialDelete, "deleted a testimonial", map[string]interface{}{
		"testimonial_id": t.ID.String(),
		"owner_name":     t.User.Name,
		"owner_role":     t.Role,
		"ip":             requestIP,
	})
	s.invalidateListings(ctx)

	return t.ID, nil
}

// List serves one page, from cache when possible. Non-admin callers are
// always restricted to approved testimonials regardless of the requested
// filter; a cached page may be stale until the next mutation or TTL expiry.
func (s *testimonialService) List(ctx context.Context, actor *model.User, approvedOnly bool, page, limit int) (*TestimonialPage, error) {
	if actor == nil || !actor.IsAdmin() {
		approvedOnly = true
	}
	page, limit = normalizePage(page, limit)

	key := listCacheKey(approvedOnly, page, limit)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached TestimonialPage
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	items, total, err := s.repo.List(ctx, approvedOnly, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}

	result := &TestimonialPage{
		Testimonials: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	}

	if payload, err := json.Marshal(result); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.cacheTTL)
	}

	return result, nil
}

func (s *testimonialService) invalidateListings(ctx context.Context) {
	if err := s.cache.DeleteByPrefix(ctx, testimonialListKeyPrefix); err != nil {
		s.log.Warn().Err(err).Msg("testimonial listing cache invalidation failed")
	}
}
