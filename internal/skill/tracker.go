// Package skill folds answer outcomes into per-category running statistics.
package skill

import (
	"context"
	"fmt"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/clock"
	"github.com/skillpulse/skillpulse/internal/keylock"
	"github.com/skillpulse/skillpulse/internal/logger"
	"github.com/skillpulse/skillpulse/internal/store"
)

// ApplyOutcome returns existing updated with one answer. A nil existing stat
// and a stat with zero attempts are treated the same.
func ApplyOutcome(existing *store.CategoryStat, userID string, cat category.Category, diff category.Difficulty, correct bool, now clock.Timestamp) store.CategoryStat {
	var s store.CategoryStat
	if existing != nil {
		s = *existing
	}
	s.UserID = userID
	s.Category = cat

	oldTotal := s.TotalQuizzes
	s.TotalQuizzes = oldTotal + 1
	if correct {
		s.CorrectCount++
	}
	s.CorrectRate = float64(s.CorrectCount) / float64(s.TotalQuizzes)
	s.AverageDifficulty = (s.AverageDifficulty*float64(oldTotal) + diff.Value()) / float64(s.TotalQuizzes)
	s.LastAnsweredAt = now
	return s
}

// Tracker persists category statistics, serializing updates per
// (user, category).
type Tracker struct {
	repo  store.StatsRepo
	locks keylock.Locker
	clock clock.Clock
	log   *logger.Logger
}

// NewTracker creates a tracker.
func NewTracker(repo store.StatsRepo, locks keylock.Locker, clk clock.Clock, log *logger.Logger) *Tracker {
	if log == nil {
		log = logger.Nop()
	}
	return &Tracker{repo: repo, locks: locks, clock: clk, log: log}
}

// Record stores the answer and folds it into the user's stat for its
// category. The answer row, the user's totals and the stat are written
// together, so a storage error leaves all three as they were. A zero
// AnsweredAt is stamped with the tracker's clock.
func (t *Tracker) Record(ctx context.Context, rec *store.AnswerRecord) (store.CategoryStat, store.UserTotals, error) {
	unlock, err := t.locks.Lock(ctx, keylock.StatKey(rec.UserID, string(rec.Category)))
	if err != nil {
		return store.CategoryStat{}, store.UserTotals{}, fmt.Errorf("lock stat: %w", err)
	}
	defer unlock()

	existing, err := t.repo.GetCategoryStat(ctx, rec.UserID, rec.Category)
	if err != nil {
		return store.CategoryStat{}, store.UserTotals{}, fmt.Errorf("get category stat: %w", err)
	}

	if rec.AnsweredAt.IsZero() {
		rec.AnsweredAt = t.clock.Now()
	}
	updated := ApplyOutcome(existing, rec.UserID, rec.Category, rec.Difficulty, rec.Correct, rec.AnsweredAt)
	totals, err := t.repo.RecordAnswer(ctx, rec, updated)
	if err != nil {
		t.log.Error("record answer failed", "user_id", rec.UserID, "category", rec.Category, "error", err)
		return store.CategoryStat{}, store.UserTotals{}, fmt.Errorf("record answer: %w", err)
	}
	return updated, totals, nil
}
