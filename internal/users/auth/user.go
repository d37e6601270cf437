// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

/*
Package auth implements the user identity layer of the museum backend.

It defines the User entity, the credential verification flow and the account
registration rules. Visitors browse anonymously; accounts exist for the
curation staff (admins) and registered members.
*/
package auth

import (
	"time"

	"github.com/teranga-labs/musee-api/internal/platform/constants"
	"github.com/teranga-labs/musee-api/internal/platform/sec"
	"github.com/teranga-labs/musee-api/internal/platform/validate"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           int          `json:"id"`
	Username     string       `json:"username"`
	Email        *string      `json:"email,omitempty"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldRole            = "role"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)

// Validate checks the account invariants. The password hash is assumed to be
// set by the service, never by callers.
func (user *User) Validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, user.Username).
		MinLen(FieldUsername, user.Username, constants.MinUsernameLength).
		MaxLen(FieldUsername, user.Username, 50)
	validator.Custom(FieldRole, !user.Role.Valid(), "must be admin or user")
	validator.Custom(FieldPassword, user.PasswordHash == "", "hash is missing")

	if user.Email != nil && *user.Email != "" {
		validator.Email(FieldEmail, *user.Email)
	}

	return validator.Err()
}

// ValidatePlaintextPassword enforces the password policy before hashing.
func ValidatePlaintextPassword(plain string) error {
	validator := &validate.Validator{}
	validator.Required(FieldPassword, plain).
		MinLen(FieldPassword, plain, constants.MinPasswordLength)
	return validator.Err()
}
