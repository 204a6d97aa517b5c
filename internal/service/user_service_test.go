package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
)

func TestUserList(t *testing.T) {
	var gotFilter repository.UserFilter
	users := &mockUserRepo{
		ListFunc: func(_ context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
			gotFilter = filter
			return []domain.User{
				{ID: "tech-1", Name: "Dana", Role: domain.RoleTech},
			}, 1, nil
		},
	}
	svc := NewUserService(users, nil)

	role := domain.RoleTech
	page, err := svc.List(context.Background(), UserQuery{Role: &role, Sort: "name,asc", Page: 0, Size: 20})
	require.NoError(t, err)

	assert.Equal(t, "name,asc", gotFilter.Sort)
	require.NotNil(t, gotFilter.Role)
	assert.Equal(t, domain.RoleTech, *gotFilter.Role)
	require.Len(t, page.Content, 1)
	assert.True(t, page.First)
	assert.True(t, page.Last)
}

func TestUserDelete(t *testing.T) {
	ctx := context.Background()
	admin := Actor{ID: "admin-1", Role: domain.RoleAdmin}

	store := func(target *domain.User) (*mockUserRepo, *bool) {
		deleted := false
		repo := &mockUserRepo{
			GetByIDFunc: func(context.Context, string) (*domain.User, error) {
				if target == nil {
					return nil, pgx.ErrNoRows
				}
				return target, nil
			},
			DeleteFunc: func(context.Context, string) error {
				deleted = true
				return nil
			},
		}
		return repo, &deleted
	}

	t.Run("admin deletes a client", func(t *testing.T) {
		users, deleted := store(&domain.User{ID: "client-1", Role: domain.RoleClient})
		svc := NewUserService(users, nil)

		require.NoError(t, svc.Delete(ctx, admin, "client-1"))
		assert.True(t, *deleted)
	})

	t.Run("admin target refused", func(t *testing.T) {
		users, deleted := store(&domain.User{ID: "admin-2", Role: domain.RoleAdmin})
		svc := NewUserService(users, nil)

		err := svc.Delete(ctx, admin, "admin-2")
		assertCode(t, err, "FORBIDDEN")
		assert.False(t, *deleted)
	})

	t.Run("non-admin caller refused before lookup", func(t *testing.T) {
		users, deleted := store(&domain.User{ID: "client-1", Role: domain.RoleClient})
		svc := NewUserService(users, nil)

		err := svc.Delete(ctx, Actor{ID: "tech-1", Role: domain.RoleTech}, "client-1")
		assertCode(t, err, "FORBIDDEN")
		assert.False(t, *deleted)
	})

	t.Run("unknown target", func(t *testing.T) {
		users, _ := store(nil)
		svc := NewUserService(users, nil)

		err := svc.Delete(ctx, admin, "ghost")
		assertCode(t, err, "NOT_FOUND")
	})

	t.Run("referenced target surfaces a conflict, not a 500", func(t *testing.T) {
		users := &mockUserRepo{
			GetByIDFunc: func(context.Context, string) (*domain.User, error) {
				return &domain.User{ID: "tech-1", Role: domain.RoleTech}, nil
			},
			DeleteFunc: func(context.Context, string) error {
				return &pgconn.PgError{Code: "23503", ConstraintName: "tickets_assigned_to_fkey"}
			},
		}
		svc := NewUserService(users, nil)

		err := svc.Delete(ctx, admin, "tech-1")
		assertCode(t, err, "CONFLICT")
	})
}
