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

// ErrInvalidRole is returned when a role update names an unknown role.
var ErrInvalidRole = errors.New("role must be user or admin")

// ErrInvalidPermission is returned when a grant names an unknown action.
var ErrInvalidPermission = errors.New("permission action not recognized")

// UserPage is one page of the user directory.
type UserPage struct {
	Users      []model.User `json:"users"`
	Pagination Pagination   `json:"pagination"`
}

// UserService covers the admin-only account management surface. Roles and
// permission sets are mutated here and nowhere else.
type UserService interface {
	List(ctx context.Context, actor *model.User, page, limit int) (*UserPage, error)
	UpdateRole(ctx context.Context, actor *model.User, userID uuid.UUID, role model.Role, requestIP string) (*model.User, error)
	ReplacePermissions(ctx context.Context, actor *model.User, userID uuid.UUID, perms []model.Permission, requestIP string) (*model.User, error)
}

type userService struct {
	users    repository.UserRepository
	activity ActivityService
	gate     *auth.Gate
}

// NewUserService creates a new user management service.
func NewUserService(users repository.UserRepository, activity ActivityService, gate *auth.Gate) UserService {
	return &userService{users: users, activity: activity, gate: gate}
}

func (s *userService) List(ctx context.Context, actor *model.User, page, limit int) (*UserPage, error) {
	if err := s.gate.RequireAdmin(actor); err != nil {
		return nil, err
	}

	page, limit = normalizePage(page, limit)
	users, total, err := s.users.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &UserPage{
		Users: users,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	}, nil
}

func (s *userService) UpdateRole(ctx context.Context, actor *model.User, userID uuid.UUID, role model.Role, requestIP string) (*model.User, error) {
	if err := s.gate.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, ErrInvalidRole
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	oldRole := user.Role
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	user.Role = role

	s.activity.Log(ctx, actor.ID, model.ActivityUserRoleUpdate, "changed a user role", map[string]interface{}{
		"user_id":  userID.String(),
		"old_role": string(oldRole),
		"new_role": string(role),
		"ip":       requestIP,
	})

	return user, nil
}

func (s *userService) ReplacePermissions(ctx context.Context, actor *model.User, userID uuid.UUID, perms []model.Permission, requestIP string) (*model.User, error) {
	if err := s.gate.RequireAdmin(actor); err != nil {
		return nil, err
	}
	for _, p := range perms {
		if !model.ValidAction(p.Action) {
			return nil, ErrInvalidPermission
		}
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	if err := s.users.ReplacePermissions(ctx, userID, perms); err != nil {
		return nil, fmt.Errorf("replace permissions: %w", err)
	}

	s.activity.Log(ctx, actor.ID, model.ActivityUserPermsUpdate, "replaced a user permission set", map[string]interface{}{
		"user_id":     userID.String(),
		"grant_count": len(perms),
		"ip":          requestIP,
	})

	return s.users.FindByID(ctx, userID)
}
