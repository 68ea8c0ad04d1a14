package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	apperrors "github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
)

// MockDonationRepository is a mock implementation of DonationRepository.
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Create(ctx context.Context, d *model.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) List(ctx context.Context, offset, limit int) ([]model.Donation, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Donation), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRepository) SumAmount(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func newDonationFixture() (*MockDonationRepository, *MockActivityService, DonationService) {
	repo := new(MockDonationRepository)
	activity := new(MockActivityService)
	svc := NewDonationService(repo, activity, auth.NewGate(nil))
	return repo, activity, svc
}

func TestDonationService_Record(t *testing.T) {
	t.Run("records a donation and audits without an actor", func(t *testing.T) {
		repo, activity, svc := newDonationFixture()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(d *model.Donation) bool {
			return d.Currency == "KES" && d.Amount.Equal(decimal.NewFromInt(1500))
		})).Return(nil)
		activity.On("Log", mock.Anything, uuid.Nil, model.ActivityDonationAdd, mock.Anything,
			mock.MatchedBy(func(meta map[string]interface{}) bool {
				return meta["donor"] == "Jane Doe" && meta["amount"] == "1500"
			})).Return()

		donation, err := svc.Record(context.Background(), DonationInput{
			DonorName: "Jane Doe",
			Amount:    decimal.NewFromInt(1500),
		}, "203.0.113.9")

		assert.NoError(t, err)
		assert.Equal(t, "KES", donation.Currency)
		repo.AssertExpectations(t)
		activity.AssertExpectations(t)
	})

	t.Run("anonymous flag hides the donor in the audit entry", func(t *testing.T) {
		repo, activity, svc := newDonationFixture()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		activity.On("Log", mock.Anything, uuid.Nil, model.ActivityDonationAdd, mock.Anything,
			mock.MatchedBy(func(meta map[string]interface{}) bool {
				return meta["donor"] == "anonymous"
			})).Return()

		_, err := svc.Record(context.Background(), DonationInput{
			DonorName: "Jane Doe",
			Amount:    decimal.NewFromFloat(99.99),
			Anonymous: true,
		}, "")
		assert.NoError(t, err)
		activity.AssertExpectations(t)
	})

	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		repo, _, svc := newDonationFixture()

		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
			_, err := svc.Record(context.Background(), DonationInput{Amount: amount}, "")
			assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
		}
		repo.AssertNotCalled(t, "Create")
	})
}

func TestDonationService_Summary(t *testing.T) {
	t.Run("aggregates count and total", func(t *testing.T) {
		repo, _, svc := newDonationFixture()
		repo.On("Count", mock.Anything).Return(int64(12), nil)
		repo.On("SumAmount", mock.Anything).Return(decimal.RequireFromString("34500.50"), nil)

		summary, err := svc.Summary(context.Background(), adminUser())

		assert.NoError(t, err)
		assert.Equal(t, int64(12), summary.Count)
		assert.True(t, summary.Total.Equal(decimal.RequireFromString("34500.50")))
	})

	t.Run("non-admin caller is forbidden", func(t *testing.T) {
		_, _, svc := newDonationFixture()
		_, err := svc.Summary(context.Background(), regularUser())
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
