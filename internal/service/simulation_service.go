package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"ticketsim/internal/cache"
	"ticketsim/internal/metrics"
	"ticketsim/internal/model"
	"ticketsim/internal/repository"
	"ticketsim/internal/scoring"
)

// DefaultHistoryCacheTTL bounds how long a cached history list may be served.
const DefaultHistoryCacheTTL = 30 * time.Second

// SimulationService scores choices and keeps each user's history.
type SimulationService interface {
	Simulate(ctx context.Context, userID uint, in scoring.Input) (*model.Simulation, error)
	History(ctx context.Context, userID uint) ([]model.Simulation, error)
}

type simulationService struct {
	repo  repository.SimulationRepository
	cache *cache.Client
	ttl   time.Duration
}

// NewSimulationService builds a SimulationService with repository and cache.
// The cache may be nil.
func NewSimulationService(repo repository.SimulationRepository, cache *cache.Client, ttl time.Duration) SimulationService {
	if ttl <= 0 {
		ttl = DefaultHistoryCacheTTL
	}
	return &simulationService{repo: repo, cache: cache, ttl: ttl}
}

// History lists are cached under a per-user version that Simulate bumps.
// A list read before a bump is written under the old version and is never
// served again.
func (s *simulationService) cacheKey(userID uint, version int64) string {
	return fmt.Sprintf("history:%d:v%d", userID, version)
}

func (s *simulationService) versionKey(userID uint) string {
	return fmt.Sprintf("history:%d:version", userID)
}

func (s *simulationService) version(ctx context.Context, userID uint) int64 {
	data, _ := s.cache.Get(ctx, s.versionKey(userID))
	if data == nil {
		return 0
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Simulate scores the input and appends the result to the user's history.
// Every call stores a new record.
func (s *simulationService) Simulate(ctx context.Context, userID uint, in scoring.Input) (*model.Simulation, error) {
	res := scoring.Score(in)
	sim := &model.Simulation{
		UserID:      userID,
		Platform:    in.Platform,
		EntryTime:   in.EntryTime,
		TicketType:  in.TicketType,
		Network:     in.Network,
		SuccessRate: res.SuccessRate,
		Suggestion:  res.Suggestion,
	}
	if err := s.repo.Append(ctx, sim); err != nil {
		return nil, fmt.Errorf("append simulation: %w", err)
	}

	if v, err := s.cache.Incr(ctx, s.versionKey(userID)); err == nil {
		_ = s.cache.Delete(ctx, s.cacheKey(userID, v-1))
	}
	metrics.SuccessRates.Observe(float64(res.SuccessRate))
	return sim, nil
}

// History returns the user's simulations, newest first.
func (s *simulationService) History(ctx context.Context, userID uint) ([]model.Simulation, error) {
	key := s.cacheKey(userID, s.version(ctx, userID))
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Simulation
		if err := json.Unmarshal(data, &cached); err == nil && cached != nil {
			metrics.CacheHits.WithLabelValues("history").Inc()
			return cached, nil
		}
	}
	metrics.CacheMisses.WithLabelValues("history").Inc()

	sims, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	if sims == nil {
		sims = []model.Simulation{}
	}

	if payload, err := json.Marshal(sims); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return sims, nil
}
