package profile

import (
	"context"
	"fmt"

	"github.com/skillpulse/skillpulse/internal/clock"
	"github.com/skillpulse/skillpulse/internal/keylock"
	"github.com/skillpulse/skillpulse/internal/logger"
	"github.com/skillpulse/skillpulse/internal/store"
)

// Service reads and merges profiles.
type Service struct {
	repo  store.StatsRepo
	locks keylock.Locker
	clock clock.Clock
	log   *logger.Logger
}

// NewService creates a profile service.
func NewService(repo store.StatsRepo, locks keylock.Locker, clk clock.Clock, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, locks: locks, clock: clk, log: log}
}

// Get returns the user's profile or store.ErrNotFound.
func (s *Service) Get(ctx context.Context, userID string) (store.Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return store.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if p == nil {
		return store.Profile{}, store.ErrNotFound
	}
	return *p, nil
}

// Upsert merges u into the stored profile, creating it when absent. Nothing
// is written if the merged profile is invalid.
func (s *Service) Upsert(ctx context.Context, userID string, u Update) (store.Profile, error) {
	unlock, err := s.locks.Lock(ctx, keylock.ProfileKey(userID))
	if err != nil {
		return store.Profile{}, fmt.Errorf("lock profile: %w", err)
	}
	defer unlock()

	existing, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return store.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	merged, err := Apply(userID, existing, u, s.clock.Now())
	if err != nil {
		return store.Profile{}, err
	}

	if err := s.repo.PutProfile(ctx, merged); err != nil {
		s.log.Error("put profile failed", "user_id", userID, "error", err)
		return store.Profile{}, fmt.Errorf("put profile: %w", err)
	}
	s.log.Debug("profile updated", "user_id", userID, "created", existing == nil)
	return merged, nil
}
