// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teranga-labs/musee-api/internal/platform/apperr"
	"github.com/teranga-labs/musee-api/internal/platform/constants"
	"github.com/teranga-labs/musee-api/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID int, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed before merging.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	logger         *slog.Logger
}

// NewService constructs the authentication service.
func NewService(userRepo UserRepository, tokenProv TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		logger:         logger,
	}
}

// # Authentication Flow

// LoginResult is the transport-ready outcome of a successful login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}

/*
Authenticate verifies a username/password pair.

Every failure mode (empty credentials, unknown username, inactive account,
wrong password) returns the same Unauthorized error so responses never leak
which accounts exist. The unknown-username path still burns one bcrypt
comparison to keep its timing aligned with the known-username path.
*/
func (service *Service) Authenticate(context context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	user, err := service.userRepository.GetByUsername(context, username)
	if err != nil {
		sec.BurnPasswordCheck(password)
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return user, nil
}

// Login authenticates the credentials and mints a signed access token.
func (service *Service) Login(context context.Context, username, password string) (*LoginResult, error) {
	user, err := service.Authenticate(context, username, password)
	if err != nil {
		return nil, err
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), constants.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_failed: %w", err)
	}

	service.logger.Info("user_logged_in", slog.Int("user_id", user.ID))

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(constants.AccessTokenTTL.Seconds()),
		User:        user,
	}, nil
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Password string  `json:"password"`
}

/*
Register validates, hashes and persists a brand new account.

New accounts always get the member role; administrators are promoted through
the account management service. The uniqueness checks race with concurrent
registrations, which the UNIQUE constraints on the table resolve: the loser
gets the same Conflict error from the constraint violation.
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	if err := ValidatePlaintextPassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := service.userRepository.GetByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}
	if input.Email != nil && *input.Email != "" {
		if _, err := service.userRepository.GetByEmail(context, *input.Email); err == nil {
			return nil, apperr.Conflict("Email is already registered")
		}
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
		IsActive:     true,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	saved, err := service.userRepository.Save(context, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.Int("user_id", saved.ID))
	return saved, nil
}

// # Password Management

/*
ChangePassword verifies the current password and replaces it with a new one.

Returns NotFound for an unknown account, Unauthorized when the current
password does not match, and a validation error when the new password is too
weak.
*/
func (service *Service) ChangePassword(context context.Context, userID int, currentPassword, newPassword string) error {
	user, err := service.userRepository.GetByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	if err := ValidatePlaintextPassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user.PasswordHash = hashedPassword
	if _, err := service.userRepository.Save(context, user); err != nil {
		return err
	}

	service.logger.Info("user_password_changed", slog.Int("user_id", user.ID))
	return nil
}
