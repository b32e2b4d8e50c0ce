// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrUserDuplicate is returned when a create collides with an existing
// username or email. The store does not say which field collided.
var ErrUserDuplicate = errors.New("username or email already exists")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// Create persists a new user entity to the storage. Uniqueness of
	// username and email is enforced atomically by the store.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a single user by their lowercased email address.
	// The returned entity includes the password hash for verification.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a single user by their unique ID with the password
	// hash stripped.
	FindByID(ctx context.Context, id string) (*entity.User, error)
}
