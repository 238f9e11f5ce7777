package repository

import (
	"context"
	"errors"

	"ticketsim/internal/model"
)

// ErrUserNotFound is returned by FindByUsername when no user matches.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines user persistence operations.
type UserRepository interface {
	// Create assigns a fresh ID and stores the user, or fails with
	// errors.ErrDuplicateUsername if the username is taken.
	Create(ctx context.Context, user *model.User) error
	// FindByUsername matches the username exactly, or returns ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// SimulationRepository defines simulation history persistence operations.
type SimulationRepository interface {
	// Append assigns a fresh ID and creation time and stores the record.
	Append(ctx context.Context, sim *model.Simulation) error
	// ListByUser returns the user's records, newest first. Unknown users
	// yield an empty slice.
	ListByUser(ctx context.Context, userID uint) ([]model.Simulation, error)
}

// Store is the full persistence capability set the service layer needs.
type Store interface {
	UserRepository
	SimulationRepository
	Close() error
}
