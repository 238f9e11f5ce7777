package service

import (
	"context"
	"errors"
	"fmt"

	"ticketsim/internal/auth"
	apperrors "ticketsim/internal/errors"
	"ticketsim/internal/metrics"
	"ticketsim/internal/model"
	"ticketsim/internal/repository"
)

// dummyPassword is hashed once at startup so that logins for unknown users
// spend the same bcrypt work as logins with a wrong password.
const dummyPassword = "ticketsim-timing-equalizer"

// AccountService handles registration and credential checks. Login is
// stateless: no session or token is issued.
type AccountService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

type accountService struct {
	users     repository.UserRepository
	hasher    auth.PasswordHasher
	dummyHash []byte
}

// NewAccountService creates a new account service.
func NewAccountService(users repository.UserRepository, hasher auth.PasswordHasher) (AccountService, error) {
	dummyHash, err := hasher.Hash([]byte(dummyPassword))
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	return &accountService{
		users:     users,
		hasher:    hasher,
		dummyHash: dummyHash,
	}, nil
}

// Register creates a new user with a hashed password.
func (s *accountService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password", apperrors.ErrMissingField)
	}

	// Cheap pre-check; the store's Create is the authoritative one.
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		metrics.Registrations.WithLabelValues("duplicate").Inc()
		return nil, apperrors.ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		metrics.Registrations.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := s.hasher.Hash([]byte(password))
	if err != nil {
		metrics.Registrations.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUsername) {
			metrics.Registrations.WithLabelValues("duplicate").Inc()
			return nil, apperrors.ErrDuplicateUsername
		}
		metrics.Registrations.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	return user, nil
}

// Authenticate verifies credentials. Unknown users and wrong passwords
// produce the same ErrInvalidCredentials after the same hashing work.
func (s *accountService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = s.hasher.Compare(s.dummyHash, []byte(password))
			metrics.Logins.WithLabelValues("invalid").Inc()
			return nil, apperrors.ErrInvalidCredentials
		}
		metrics.Logins.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Compare([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.Logins.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	metrics.Logins.WithLabelValues("success").Inc()
	return user, nil
}
