package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/authz"
	"github.com/spec-kit/helpdesk/internal/cache"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// UserQuery captures user listing parameters.
type UserQuery struct {
	Role *domain.Role
	Sort string
	Page int
	Size int
}

// UserService exposes the identity projections the workflow needs: listing
// technicians for assignment and administrative deletion.
type UserService struct {
	users     repository.UserRepository
	userCache *cache.UserCache
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, userCache *cache.UserCache) *UserService {
	return &UserService{users: users, userCache: userCache}
}

// List returns one page of user projections.
func (s *UserService) List(ctx context.Context, query UserQuery) (domain.Page[domain.User], error) {
	size := query.Size
	if size < 1 {
		size = 10
	}
	page := query.Page
	if page < 0 {
		page = 0
	}

	users, total, err := s.users.List(ctx, repository.UserFilter{
		Role:   query.Role,
		Sort:   query.Sort,
		Limit:  size,
		Offset: page * size,
	})
	if err != nil {
		return domain.Page[domain.User]{}, apperrors.MapError(err)
	}
	return domain.NewPage(users, page, size, total), nil
}

// Delete removes a user. Administrators cannot be deleted, not even by
// another administrator.
func (s *UserService) Delete(ctx context.Context, actor Actor, userID string) error {
	if !authz.CapabilitiesOf(actor.Role).CanManageUsers {
		return apperrors.NewForbidden("role cannot manage users")
	}

	target, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return apperrors.MapError(err)
	}
	if target.Role == domain.RoleAdmin {
		return apperrors.NewForbidden("administrators cannot be deleted")
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return apperrors.MapError(err)
	}
	s.userCache.Invalidate(ctx, userID)
	return nil
}
