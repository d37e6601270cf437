// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

// Package account implements account management on top of the identity layer:
// profile lookups and the administrative user listing and removal.
package account

import (
	"context"
	"log/slog"

	"github.com/teranga-labs/musee-api/internal/platform/apperr"
	"github.com/teranga-labs/musee-api/internal/platform/sec"
	"github.com/teranga-labs/musee-api/internal/users/auth"
)

type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

// Profile returns the account of the given user.
func (service *Service) Profile(context context.Context, userID int) (*auth.User, error) {
	return service.userRepository.GetByID(context, userID)
}

// ListUsers returns every account, newest first. Admin only.
func (service *Service) ListUsers(context context.Context, role sec.UserRole) ([]*auth.User, error) {
	if !role.AtLeast(sec.RoleAdmin) {
		return nil, apperr.Forbidden("Administrator role required")
	}
	return service.userRepository.GetAll(context)
}

// DeleteUser removes an account. Admin only, and administrators can never
// delete their own account, which keeps at least the acting admin alive.
func (service *Service) DeleteUser(context context.Context, role sec.UserRole, callerID, targetID int) error {
	if !role.AtLeast(sec.RoleAdmin) {
		return apperr.Forbidden("Administrator role required")
	}
	if callerID == targetID {
		return apperr.Forbidden("Administrators cannot delete their own account")
	}

	deleted, err := service.userRepository.Delete(context, targetID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("User")
	}

	service.logger.Warn("user_deleted",
		slog.Int("user_id", targetID),
		slog.Int("deleted_by", callerID),
	)
	return nil
}

// SetActive enables or disables an account. Admin only.
func (service *Service) SetActive(context context.Context, role sec.UserRole, targetID int, active bool) (*auth.User, error) {
	if !role.AtLeast(sec.RoleAdmin) {
		return nil, apperr.Forbidden("Administrator role required")
	}

	user, err := service.userRepository.GetByID(context, targetID)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	saved, err := service.userRepository.Save(context, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_active_toggled",
		slog.Int("user_id", targetID),
		slog.Bool("active", active),
	)
	return saved, nil
}
