package auth

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/repository"
)

// Gate resolves the calling identity and answers authorization questions.
// Role and permissions are always re-read from the store so a token minted
// before a demotion cannot keep its old powers.
type Gate struct {
	users repository.UserRepository
}

// NewGate creates an access control gate over the user store.
func NewGate(users repository.UserRepository) *Gate {
	return &Gate{users: users}
}

// ResolveUser loads the caller's fresh user record from validated claims.
// Returns ErrUnauthenticated when the claims do not resolve to a user.
func (g *Gate) ResolveUser(ctx context.Context, claims *Claims) (*model.User, error) {
	if claims == nil || claims.UserID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	user, err := g.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// RequireAuthenticated fails with ErrUnauthenticated when no user resolved.
func (g *Gate) RequireAuthenticated(user *model.User) error {
	if user == nil {
		return apperrors.ErrUnauthenticated
	}
	return nil
}

// RequireAdmin fails with ErrForbidden when the user is not an admin.
func (g *Gate) RequireAdmin(user *model.User) error {
	if user == nil {
		return apperrors.ErrUnauthenticated
	}
	if !user.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

// RequirePermission allows the action when the user is an admin (for any
// non-manage action) or holds a matching grant, including a manage grant on
// the resource.
func (g *Gate) RequirePermission(user *model.User, resource string, action model.Action) error {
	if user == nil {
		return apperrors.ErrUnauthenticated
	}
	if user.IsAdmin() && action != model.ActionManage {
		return nil
	}
	if model.HasPermission(user.Permissions, resource, action) {
		return nil
	}
	return apperrors.ErrForbidden
}
