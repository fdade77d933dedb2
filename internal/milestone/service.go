package milestone

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillpulse/skillpulse/internal/clock"
	"github.com/skillpulse/skillpulse/internal/keylock"
	"github.com/skillpulse/skillpulse/internal/logger"
	"github.com/skillpulse/skillpulse/internal/store"
)

// Service detects and persists milestones. The mastery existence check and
// insert run under a per-(user, category) lock, and the repository's unique
// (user, type, scope) index rejects anything that slips past.
type Service struct {
	detector *Detector
	repo     store.StatsRepo
	locks    keylock.Locker
	clock    clock.Clock
	log      *logger.Logger
}

// NewService creates a milestone service.
func NewService(repo store.StatsRepo, locks keylock.Locker, clk clock.Clock, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		detector: NewDetector(repo),
		repo:     repo,
		locks:    locks,
		clock:    clk,
		log:      log,
	}
}

// Evaluate runs detection for one answer and stores what fired. It returns
// only the milestones that were newly inserted.
func (s *Service) Evaluate(ctx context.Context, in Input) ([]store.MilestoneRecord, error) {
	if mastered(in.Stat) {
		unlock, err := s.locks.Lock(ctx, keylock.MilestoneKey(in.UserID, CategoryMastery, string(in.Category)))
		if err != nil {
			return nil, fmt.Errorf("lock milestone: %w", err)
		}
		defer unlock()
	}

	candidates, err := s.detector.Detect(ctx, in)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var awarded []store.MilestoneRecord
	for _, c := range candidates {
		rec := store.MilestoneRecord{
			ID:          uuid.NewString(),
			UserID:      in.UserID,
			Type:        c.Type,
			Category:    c.Category,
			Scope:       c.Scope,
			Achievement: c.Achievement,
			Metadata:    c.Metadata,
			AchievedAt:  now,
		}
		inserted, err := s.repo.InsertMilestone(ctx, rec)
		if err != nil {
			s.log.Error("insert milestone failed", "user_id", in.UserID, "type", c.Type, "error", err)
			return awarded, fmt.Errorf("insert milestone: %w", err)
		}
		if !inserted {
			s.log.Debug("milestone already awarded", "user_id", in.UserID, "type", c.Type, "scope", c.Scope)
			continue
		}
		s.log.Info("milestone awarded", "user_id", in.UserID, "type", c.Type, "scope", c.Scope)
		awarded = append(awarded, rec)
	}
	return awarded, nil
}

// List returns all of a user's milestones, oldest first.
func (s *Service) List(ctx context.Context, userID string) ([]store.MilestoneRecord, error) {
	recs, err := s.repo.ListMilestonesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return recs, nil
}
