package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	apperrors "github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
)

// MockTestimonialRepository is a mock implementation of TestimonialRepository.
type MockTestimonialRepository struct {
	mock.Mock
}

func (m *MockTestimonialRepository) Create(ctx context.Context, t *model.Testimonial) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTestimonialRepository) Update(ctx context.Context, t *model.Testimonial) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTestimonialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTestimonialRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Testimonial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Testimonial), args.Error(1)
}

func (m *MockTestimonialRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Testimonial, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Testimonial), args.Error(1)
}

func (m *MockTestimonialRepository) List(ctx context.Context, approvedOnly bool, offset, limit int) ([]model.Testimonial, int64, error) {
	args := m.Called(ctx, approvedOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Testimonial), args.Get(1).(int64), args.Error(2)
}

// MockActivityService is a mock implementation of ActivityService.
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Log(ctx context.Context, actorID uuid.UUID, kind model.ActivityKind, detail string, metadata map[string]interface{}) {
	m.Called(ctx, actorID, kind, detail, metadata)
}

func (m *MockActivityService) List(ctx context.Context, actor *model.User, page, limit int) (*ActivityPage, error) {
	args := m.Called(ctx, actor, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ActivityPage), args.Error(1)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

func newTestimonialFixture() (*MockTestimonialRepository, *MockActivityService, *MockCache, TestimonialService) {
	repo := new(MockTestimonialRepository)
	activity := new(MockActivityService)
	cache := new(MockCache)
	svc := NewTestimonialService(repo, activity, auth.NewGate(nil), cache, 5*time.Minute, zerolog.Nop())
	return repo, activity, cache, svc
}

func adminUser() *model.User {
	return &model.User{ID: uuid.New(), Name: "Admin", Role: model.RoleAdmin}
}

func regularUser() *model.User {
	return &model.User{ID: uuid.New(), Name: "Member", Role: model.RoleUser}
}

func TestTestimonialService_Submit(t *testing.T) {
	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockTestimonialRepository, *MockActivityService)
		expectedError error
		wantApproved  bool
	}{
		{
			name:  "non-admin submission starts pending",
			actor: regularUser(),
			setupMock: func(repo *MockTestimonialRepository, activity *MockActivityService) {
				repo.On("FindByUserID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Testimonial")).Return(nil)
				activity.On("Log", mock.Anything, mock.Anything, model.ActivityTestimonialAdd, mock.Anything, mock.Anything).Return()
			},
			wantApproved: false,
		},
		{
			name:  "admin submission is auto-approved",
			actor: adminUser(),
			setupMock: func(repo *MockTestimonialRepository, activity *MockActivityService) {
				repo.On("FindByUserID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Testimonial")).Return(nil)
				activity.On("Log", mock.Anything, mock.Anything, model.ActivityTestimonialAdd, mock.Anything, mock.Anything).Return()
			},
			wantApproved: true,
		},
		{
			name:  "second submission conflicts",
			actor: regularUser(),
			setupMock: func(repo *MockTestimonialRepository, activity *MockActivityService) {
				repo.On("FindByUserID", mock.Anything, mock.Anything).Return(&model.Testimonial{ID: uuid.New()}, nil)
			},
			expectedError: apperrors.ErrDuplicateTestimonial,
		},
		{
			// Two requests pass the pre-insert check together; the loser's
			// insert trips the unique index and must still read as a conflict.
			name:  "concurrent duplicate insert conflicts",
			actor: regularUser(),
			setupMock: func(repo *MockTestimonialRepository, activity *MockActivityService) {
				repo.On("FindByUserID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Testimonial")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateTestimonial,
		},
		{
			name:          "unauthenticated caller is rejected",
			actor:         nil,
			setupMock:     func(repo *MockTestimonialRepository, activity *MockActivityService) {},
			expectedError: apperrors.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, activity, _, svc := newTestimonialFixture()
			tt.setupMock(repo, activity)

			created, err := svc.Submit(context.Background(), tt.actor, "Volunteer", "A wonderful foundation.")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, created)
				assert.Equal(t, tt.wantApproved, created.Approved)
				assert.Equal(t, tt.actor.ID, created.UserID)
			}

			repo.AssertExpectations(t)
			activity.AssertExpectations(t)
		})
	}
}

func TestTestimonialService_Approve(t *testing.T) {
	testimonialID := uuid.New()

	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockTestimonialRepository, *MockActivityService, *MockCache)
		expectedError error
	}{
		{
			name:  "pending testimonial is approved and cache swept",
			actor: adminUser(),
			setupMock: func(repo *MockTestimonialRepository, activity *MockActivityService, cache *MockCache) {
				repo.On("FindByID", mock.Anything, testimonialID).
					Return(&model.Testimonial{ID: testimonialID, Approved: false}, nil)
				repo.On("Update", mock.Anything, mock.MatchedBy(func(tm *model.Testimonial) bool {
					return tm.Approved
				})).Return(nil)
				activity.On("Log", mock.Anything, mock.Anything, model.ActivityTestimonialApprove, mock.Anything,
					mock.MatchedBy(func(meta map[string]interface{}) bool {
						return meta["old_status"] == false && meta["new_status"] == true
					})).Return()
				cache.On("DeleteByPrefix", mock.Anything, testimonialListKeyPrefix).Return(nil)
			},
		},
		{
			name:  "approving twice conflicts without touching anything",
			actor: adminUser(),
			setupMock: func(repo *MockTestimonialRepository, activity *MockActivityService, cache *MockCache) {
				repo.On("FindByID", mock.Anything, testimonialID).
					Return(&model.Testimonial{ID: testimonialID, Approved: true}, nil)
			},
			expectedError: apperrors.ErrAlreadyApproved,
		},
		{
			name:  "missing testimonial",
			actor: adminUser(),
			setupMock: func(repo *MockTestimonialRepository, activity *MockActivityService, cache *MockCache) {
				repo.On("FindByID", mock.Anything, testimonialID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTestimonialNotFound,
		},
		{
			name:          "non-admin caller is forbidden",
			actor:         regularUser(),
			setupMock:     func(repo *MockTestimonialRepository, activity *MockActivityService, cache *MockCache) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:          "unauthenticated caller is rejected",
			actor:         nil,
			setupMock:     func(repo *MockTestimonialRepository, activity *MockActivityService, cache *MockCache) {},
			expectedError: apperrors.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, activity, cache, svc := newTestimonialFixture()
			tt.setupMock(repo, activity, cache)

			updated, err := svc.Approve(context.Background(), tt.actor, testimonialID, "203.0.113.9")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, updated)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, updated)
				assert.True(t, updated.Approved)
			}

			repo.AssertExpectations(t)
			activity.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestTestimonialService_Delete(t *testing.T) {
	testimonialID := uuid.New()
	owner := regularUser()

	t.Run("deletes and records the owner", func(t *testing.T) {
		repo, activity, cache, svc := newTestimonialFixture()
		repo.On("FindByID", mock.Anything, testimonialID).
			Return(&model.Testimonial{ID: testimonialID, UserID: owner.ID, Role: "Volunteer", User: *owner}, nil)
		repo.On("Delete", mock.Anything, testimonialID).Return(nil)
		activity.On("Log", mock.Anything, mock.Anything, model.ActivityTestimonialDelete, mock.Anything,
			mock.MatchedBy(func(meta map[string]interface{}) bool {
				return meta["owner_name"] == owner.Name
			})).Return()
		cache.On("DeleteByPrefix", mock.Anything, testimonialListKeyPrefix).Return(nil)

		deletedID, err := svc.Delete(context.Background(), adminUser(), testimonialID, "203.0.113.9")

		assert.NoError(t, err)
		assert.Equal(t, testimonialID, deletedID)
		repo.AssertExpectations(t)
		activity.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("missing testimonial", func(t *testing.T) {
		repo, _, _, svc := newTestimonialFixture()
		repo.On("FindByID", mock.Anything, testimonialID).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Delete(context.Background(), adminUser(), testimonialID, "")
		assert.ErrorIs(t, err, apperrors.ErrTestimonialNotFound)
	})

	t.Run("non-admin caller is forbidden", func(t *testing.T) {
		_, _, _, svc := newTestimonialFixture()
		_, err := svc.Delete(context.Background(), regularUser(), testimonialID, "")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestTestimonialService_List(t *testing.T) {
	t.Run("non-admin request for pending entries is forced to approved", func(t *testing.T) {
		repo, _, cache, svc := newTestimonialFixture()
		cache.On("Get", mock.Anything, listCacheKey(true, 1, 10)).Return(nil, nil)
		repo.On("List", mock.Anything, true, 0, 10).
			Return([]model.Testimonial{{ID: uuid.New(), Approved: true}}, int64(1), nil)
		cache.On("Set", mock.Anything, listCacheKey(true, 1, 10), mock.Anything, 5*time.Minute).Return(nil)

		result, err := svc.List(context.Background(), regularUser(), false, 1, 10)

		assert.NoError(t, err)
		assert.Len(t, result.Testimonials, 1)
		for _, tm := range result.Testimonials {
			assert.True(t, tm.Approved)
		}
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("admin may list pending entries", func(t *testing.T) {
		repo, _, cache, svc := newTestimonialFixture()
		cache.On("Get", mock.Anything, listCacheKey(false, 1, 10)).Return(nil, nil)
		repo.On("List", mock.Anything, false, 0, 10).
			Return([]model.Testimonial{{Approved: false}, {Approved: true}}, int64(2), nil)
		cache.On("Set", mock.Anything, listCacheKey(false, 1, 10), mock.Anything, 5*time.Minute).Return(nil)

		result, err := svc.List(context.Background(), adminUser(), false, 1, 10)

		assert.NoError(t, err)
		assert.Len(t, result.Testimonials, 2)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		repo, _, cache, svc := newTestimonialFixture()
		cached := TestimonialPage{
			Testimonials: []model.Testimonial{{ID: uuid.New(), Approved: true}},
			Pagination:   Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1},
		}
		payload, _ := json.Marshal(cached)
		cache.On("Get", mock.Anything, listCacheKey(true, 1, 10)).Return(payload, nil)

		result, err := svc.List(context.Background(), nil, true, 1, 10)

		assert.NoError(t, err)
		assert.Equal(t, cached.Pagination, result.Pagination)
		assert.Len(t, result.Testimonials, 1)
		repo.AssertNotCalled(t, "List")
	})

	t.Run("pagination metadata is derived from the total", func(t *testing.T) {
		repo, _, cache, svc := newTestimonialFixture()
		cache.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
		repo.On("List", mock.Anything, true, 10, 10).
			Return([]model.Testimonial{}, int64(25), nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		result, err := svc.List(context.Background(), nil, true, 2, 10)

		assert.NoError(t, err)
		assert.Equal(t, 3, result.Pagination.TotalPages)
		assert.Equal(t, int64(25), result.Pagination.Total)
	})
}
