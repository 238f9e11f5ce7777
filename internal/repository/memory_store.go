package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "ticketsim/internal/errors"
	"ticketsim/internal/model"
)

type memoryStore struct {
	mu          sync.Mutex
	now         func() time.Time
	users       map[uint]model.User
	byUsername  map[string]uint
	simulations []model.Simulation
	nextUserID  uint
	nextSimID   uint
}

// NewMemoryStore creates a process-local store. All mutations are
// serialized by a single lock, so username checks, id assignment and
// inserts are atomic with respect to each other.
func NewMemoryStore() Store {
	return &memoryStore{
		now:        time.Now,
		users:      make(map[uint]model.User),
		byUsername: make(map[string]uint),
		nextUserID: 1,
		nextSimID:  1,
	}
}

func (s *memoryStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[user.Username]; exists {
		return apperrors.ErrDuplicateUsername
	}
	user.ID = s.nextUserID
	s.nextUserID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now().UTC()
	}
	s.users[user.ID] = *user
	s.byUsername[user.Username] = user.ID
	return nil
}

func (s *memoryStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (s *memoryStore) Append(ctx context.Context, sim *model.Simulation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sim.ID = s.nextSimID
	s.nextSimID++
	sim.CreatedAt = s.now().UTC()
	s.simulations = append(s.simulations, *sim)
	return nil
}

func (s *memoryStore) ListByUser(ctx context.Context, userID uint) ([]model.Simulation, error) {
	s.mu.Lock()
	out := make([]model.Simulation, 0)
	for _, sim := range s.simulations {
		if sim.UserID == userID {
			out = append(out, sim)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *memoryStore) Close() error {
	return nil
}
