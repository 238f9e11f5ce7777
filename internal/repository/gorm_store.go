package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "ticketsim/internal/errors"
	"ticketsim/internal/model"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore builds a GORM-backed store over the users and strategies
// tables. The unique index on users.username enforces uniqueness, so
// concurrent registrations are arbitrated by the database.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Create creates a new user.
func (r *gormStore) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrDuplicateUsername
	}
	return err
}

// FindByUsername finds a user by exact username.
func (r *gormStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	// Case-insensitive collations (MySQL default) may match a different case.
	if user.Username != username {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// Append creates a new simulation record.
func (r *gormStore) Append(ctx context.Context, sim *model.Simulation) error {
	sim.ID = 0
	sim.CreatedAt = time.Time{}
	return r.db.WithContext(ctx).Create(sim).Error
}

// ListByUser lists a user's simulation records, newest first.
func (r *gormStore) ListByUser(ctx context.Context, userID uint) ([]model.Simulation, error) {
	sims := make([]model.Simulation, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&sims).Error; err != nil {
		return nil, err
	}
	if sims == nil {
		sims = []model.Simulation{}
	}
	return sims, nil
}

// Close closes the underlying connection pool.
func (r *gormStore) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
