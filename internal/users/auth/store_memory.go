// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

package auth

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/teranga-labs/musee-api/internal/platform/dberr"
)

// MemoryRepository is an in-memory UserRepository used as the test seam.
// It is safe for concurrent use.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  map[int]*User
	nextID int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:  make(map[int]*User),
		nextID: 1,
	}
}

func clone(user *User) *User {
	copied := *user
	if user.Email != nil {
		email := *user.Email
		copied.Email = &email
	}
	return &copied
}

func (repository *MemoryRepository) GetByID(_ context.Context, id int) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, found := repository.users[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	return clone(user), nil
}

func (repository *MemoryRepository) GetByUsername(_ context.Context, username string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, user := range repository.users {
		if user.Username == username {
			return clone(user), nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repository *MemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, user := range repository.users {
		if user.Email != nil && *user.Email == email {
			return clone(user), nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repository *MemoryRepository) GetAll(_ context.Context) ([]*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	users := make([]*User, 0, len(repository.users))
	for _, user := range repository.users {
		users = append(users, clone(user))
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID > users[j].ID
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (repository *MemoryRepository) Save(_ context.Context, user *User) (*User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if user.ID == 0 {
		user.ID = repository.nextID
		repository.nextID++
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now().UTC()
		}
	} else if _, found := repository.users[user.ID]; !found {
		return nil, dberr.ErrNotFound
	}

	repository.users[user.ID] = clone(user)
	return clone(user), nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id int) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.users[id]; !found {
		return false, nil
	}
	delete(repository.users, id)
	return true, nil
}
