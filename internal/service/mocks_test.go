package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ticketsim/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockSimulationRepository is a mock implementation of SimulationRepository.
type MockSimulationRepository struct {
	mock.Mock
}

func (m *MockSimulationRepository) Append(ctx context.Context, sim *model.Simulation) error {
	args := m.Called(ctx, sim)
	return args.Error(0)
}

func (m *MockSimulationRepository) ListByUser(ctx context.Context, userID uint) ([]model.Simulation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Simulation), args.Error(1)
}

// MockHasher is a mock implementation of PasswordHasher.
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(password []byte) ([]byte, error) {
	args := m.Called(password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockHasher) Compare(hash, password []byte) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

// MockEncoder is a mock implementation of qr.Encoder.
type MockEncoder struct {
	mock.Mock
}

func (m *MockEncoder) Encode(payload string) (string, error) {
	args := m.Called(payload)
	return args.String(0), args.Error(1)
}
