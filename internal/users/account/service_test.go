// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

package account

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga-labs/musee-api/internal/platform/apperr"
	"github.com/teranga-labs/musee-api/internal/platform/sec"
	"github.com/teranga-labs/musee-api/internal/users/auth"
)

func seedUser(t *testing.T, repo *auth.MemoryRepository, username string, role sec.UserRole) *auth.User {
	t.Helper()

	saved, err := repo.Save(context.Background(), &auth.User{
		Username:     username,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         role,
		IsActive:     true,
	})
	require.NoError(t, err)
	return saved
}

func newTestService(t *testing.T) (*Service, *auth.MemoryRepository) {
	repo := auth.NewMemoryRepository()
	return NewService(repo, slog.Default()), repo
}

func TestListUsers(t *testing.T) {
	service, repo := newTestService(t)
	ctx := context.Background()
	seedUser(t, repo, "admin", sec.RoleAdmin)
	seedUser(t, repo, "aminata", sec.RoleUser)

	t.Run("admin sees everyone", func(t *testing.T) {
		users, err := service.ListUsers(ctx, sec.RoleAdmin)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("member is forbidden", func(t *testing.T) {
		_, err := service.ListUsers(ctx, sec.RoleUser)
		assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
	})
}

func TestDeleteUser(t *testing.T) {
	service, repo := newTestService(t)
	ctx := context.Background()
	admin := seedUser(t, repo, "admin", sec.RoleAdmin)
	member := seedUser(t, repo, "aminata", sec.RoleUser)

	t.Run("member cannot delete", func(t *testing.T) {
		err := service.DeleteUser(ctx, sec.RoleUser, member.ID, admin.ID)
		assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
	})

	t.Run("admin cannot delete self", func(t *testing.T) {
		err := service.DeleteUser(ctx, sec.RoleAdmin, admin.ID, admin.ID)
		assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
	})

	t.Run("unknown target", func(t *testing.T) {
		err := service.DeleteUser(ctx, sec.RoleAdmin, admin.ID, 999)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})

	t.Run("admin deletes member", func(t *testing.T) {
		require.NoError(t, service.DeleteUser(ctx, sec.RoleAdmin, admin.ID, member.ID))

		_, err := service.Profile(ctx, member.ID)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}

func TestSetActive(t *testing.T) {
	service, repo := newTestService(t)
	ctx := context.Background()
	member := seedUser(t, repo, "aminata", sec.RoleUser)

	t.Run("member is forbidden", func(t *testing.T) {
		_, err := service.SetActive(ctx, sec.RoleUser, member.ID, false)
		assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
	})

	t.Run("admin deactivates", func(t *testing.T) {
		updated, err := service.SetActive(ctx, sec.RoleAdmin, member.ID, false)
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
	})
}
