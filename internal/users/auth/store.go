// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

package auth

import "context"

// UserRepository is the persistence contract for accounts.
type UserRepository interface {
	GetByID(context context.Context, id int) (*User, error)
	GetByUsername(context context.Context, username string) (*User, error)
	GetByEmail(context context.Context, email string) (*User, error)
	GetAll(context context.Context) ([]*User, error)
	Save(context context.Context, user *User) (*User, error)
	Delete(context context.Context, id int) (bool, error)
}
