package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/repository"
)

// ActivityPage is one page of the audit trail.
type ActivityPage struct {
	Activities []model.Activity `json:"activities"`
	Pagination Pagination       `json:"pagination"`
}

// ActivityService appends to and reads the audit trail. Log is best-effort:
// a failed append must never fail the mutation it describes, so it reports
// through the logger instead of an error return.
type ActivityService interface {
	Log(ctx context.Context, actorID uuid.UUID, kind model.ActivityKind, detail string, metadata map[string]interface{})
	List(ctx context.Context, actor *model.User, page, limit int) (*ActivityPage, error)
}

type activityService struct {
	repo repository.ActivityRepository
	gate *auth.Gate
	log  zerolog.Logger
}

// NewActivityService creates a new activity service.
func NewActivityService(repo repository.ActivityRepository, gate *auth.Gate, log zerolog.Logger) ActivityService {
	return &activityService{repo: repo, gate: gate, log: log}
}

func (s *activityService) Log(ctx context.Context, actorID uuid.UUID, kind model.ActivityKind, detail string, metadata map[string]interface{}) {
	entry := &model.Activity{
		ActorID:  actorID,
		Kind:     kind,
		Detail:   detail,
		Metadata: datatypes.JSONMap(metadata),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error().Err(err).
			Str("kind", string(kind)).
			Str("actor_id", actorID.String()).
			Msg("audit append failed")
	}
}

func (s *activityService) List(ctx context.Context, actor *model.User, page, limit int) (*ActivityPage, error) {
	if err := s.gate.RequireAdmin(actor); err != nil {
		return nil, err
	}

	page, limit = normalizePage(page, limit)
	items, total, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	return &ActivityPage{
		Activities: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	}, nil
}
