// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga-labs/musee-api/internal/platform/apperr"
	"github.com/teranga-labs/musee-api/internal/platform/sec"
)

// stubTokenProvider mints predictable tokens without touching RSA keys.
type stubTokenProvider struct{}

func (stubTokenProvider) GenerateAccessToken(userID int, username, role string, _ time.Duration) (string, error) {
	return fmt.Sprintf("token-%d-%s-%s", userID, username, role), nil
}

func newTestService() (*Service, *MemoryRepository) {
	repo := NewMemoryRepository()
	return NewService(repo, stubTokenProvider{}, slog.Default()), repo
}

func register(t *testing.T, service *Service, username, password string) *User {
	t.Helper()
	created, err := service.Register(context.Background(), RegisterInput{
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	return created
}

func TestRegister(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	t.Run("creates member account with hashed password", func(t *testing.T) {
		created := register(t, service, "aminata", "secret123")

		assert.Equal(t, sec.RoleUser, created.Role)
		assert.True(t, created.IsActive)
		assert.NotEmpty(t, created.PasswordHash)
		assert.NotEqual(t, "secret123", created.PasswordHash)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, err := service.Register(ctx, RegisterInput{Username: "aminata", Password: "another1"})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		email := "moussa@musee-virtuel.sn"
		_, err := service.Register(ctx, RegisterInput{Username: "moussa", Email: &email, Password: "secret123"})
		require.NoError(t, err)

		_, err = service.Register(ctx, RegisterInput{Username: "moussa2", Email: &email, Password: "secret123"})
		assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
	})

	t.Run("short username rejected", func(t *testing.T) {
		_, err := service.Register(ctx, RegisterInput{Username: "ab", Password: "secret123"})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("short password rejected before hashing", func(t *testing.T) {
		_, err := service.Register(ctx, RegisterInput{Username: "binta", Password: "12345"})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		email := "not-an-email"
		_, err := service.Register(ctx, RegisterInput{Username: "fatou", Email: &email, Password: "secret123"})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})
}

func TestAuthenticateUniformFailures(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	register(t, service, "aminata", "secret123")

	testCases := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret123"},
		{name: "empty password", username: "aminata", password: ""},
		{name: "unknown username", username: "ghost", password: "secret123"},
		{name: "wrong password", username: "aminata", password: "wrong-pass"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Authenticate(ctx, testCase.username, testCase.password)
			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeUnauthorized, appError.Code)
			assert.Equal(t, "Invalid login credentials", appError.Message)
		})
	}

	t.Run("valid credentials succeed", func(t *testing.T) {
		user, err := service.Authenticate(ctx, "aminata", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "aminata", user.Username)
	})
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()
	created := register(t, service, "aminata", "secret123")

	created.IsActive = false
	_, err := repo.Save(ctx, created)
	require.NoError(t, err)

	_, err = service.Authenticate(ctx, "aminata", "secret123")
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
}

func TestLoginMintsToken(t *testing.T) {
	service, _ := newTestService()
	created := register(t, service, "aminata", "secret123")

	result, err := service.Login(context.Background(), "aminata", "secret123")
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("token-%d-aminata-user", created.ID), result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Positive(t, result.ExpiresIn)
	assert.Equal(t, created.ID, result.User.ID)
}

func TestChangePassword(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	created := register(t, service, "aminata", "secret123")

	t.Run("wrong current password", func(t *testing.T) {
		err := service.ChangePassword(ctx, created.ID, "wrong", "newsecret")
		assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
	})

	t.Run("weak new password", func(t *testing.T) {
		err := service.ChangePassword(ctx, created.ID, "secret123", "123")
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("unknown account", func(t *testing.T) {
		err := service.ChangePassword(ctx, 999, "secret123", "newsecret")
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})

	t.Run("success rotates the hash", func(t *testing.T) {
		require.NoError(t, service.ChangePassword(ctx, created.ID, "secret123", "newsecret"))

		_, err := service.Authenticate(ctx, "aminata", "secret123")
		assert.Error(t, err)

		user, err := service.Authenticate(ctx, "aminata", "newsecret")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})
}
