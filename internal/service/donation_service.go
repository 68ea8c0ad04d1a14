package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	apperrors "github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/repository"
)

// DonationInput carries the fields of a donation receipt.
type DonationInput struct {
	DonorName  string
	DonorEmail string
	Amount     decimal.Decimal
	Currency   string
	Message    string
	Anonymous  bool
}

// DonationPage is one page of donation records.
type DonationPage struct {
	Donations  []model.Donation `json:"donations"`
	Pagination Pagination       `json:"pagination"`
}

// DonationSummary aggregates the whole donation history.
type DonationSummary struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// DonationService records completed contributions and serves the admin view
// of them. The payment gateway lives outside this service.
type DonationService interface {
	Record(ctx context.Context, in DonationInput, requestIP string) (*model.Donation, error)
	List(ctx context.Context, actor *model.User, page, limit int) (*DonationPage, error)
	Summary(ctx context.Context, actor *model.User) (*DonationSummary, error)
}

type donationService struct {
	repo     repository.DonationRepository
	activity ActivityService
	gate     *auth.Gate
}

// NewDonationService creates a new donation service.
func NewDonationService(repo repository.DonationRepository, activity ActivityService, gate *auth.Gate) DonationService {
	return &donationService{repo: repo, activity: activity, gate: gate}
}

// Record persists a donation receipt. Donors are not required to hold an
// account, so the audit entry carries no actor.
func (s *donationService) Record(ctx context.Context, in DonationInput, requestIP string) (*model.Donation, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	donation := &model.Donation{
		DonorName:  in.DonorName,
		DonorEmail: in.DonorEmail,
		Amount:     in.Amount,
		Currency:   in.Currency,
		Message:    in.Message,
		Anonymous:  in.Anonymous,
	}
	if donation.Currency == "" {
		donation.Currency = "KES"
	}
	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("record donation: %w", err)
	}

	donor := donation.DonorName
	if donation.Anonymous || donor == "" {
		donor = "anonymous"
	}
	s.activity.Log(ctx, uuid.Nil, model.ActivityDonationAdd, "received a donation", map[string]interface{}{
		"donation_id": donation.ID.String(),
		"donor":       donor,
		"amount":      donation.Amount.String(),
		"currency":    donation.Currency,
		"ip":          requestIP,
	})

	return donation, nil
}

func (s *donationService) List(ctx context.Context, actor *model.User, page, limit int) (*DonationPage, error) {
	if err := s.gate.RequireAdmin(actor); err != nil {
		return nil, err
	}

	page, limit = normalizePage(page, limit)
	items, total, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}

	return &DonationPage{
		Donations: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	}, nil
}

func (s *donationService) Summary(ctx context.Context, actor *model.User) (*DonationSummary, error) {
	if err := s.gate.RequireAdmin(actor); err != nil {
		return nil, err
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count donations: %w", err)
	}
	total, err := s.repo.SumAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum donations: %w", err)
	}

	return &DonationSummary{Count: count, Total: total}, nil
}
