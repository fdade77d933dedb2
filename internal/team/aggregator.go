// Package team computes per-period cohort benchmarks across users.
package team

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/singleflight"

	"github.com/skillpulse/skillpulse/internal/clock"
	"github.com/skillpulse/skillpulse/internal/logger"
	"github.com/skillpulse/skillpulse/internal/percentile"
	"github.com/skillpulse/skillpulse/internal/store"
)

// ErrInvalidKey is returned for a malformed period, level or category filter.
var ErrInvalidKey = errors.New("invalid aggregate key")

// Aggregator recomputes and stores team aggregates.
type Aggregator struct {
	repo  store.StatsRepo
	log   *logger.Logger
	group singleflight.Group
}

// NewAggregator creates an aggregator.
func NewAggregator(repo store.StatsRepo, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	return &Aggregator{repo: repo, log: log}
}

// ValidateKey checks the period format and the optional filters.
func ValidateKey(key store.AggregateKey) (clock.Period, error) {
	period, err := clock.ParsePeriod(key.Period)
	if err != nil {
		return clock.Period{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	if key.Level != "" && !key.Level.Valid() {
		return clock.Period{}, fmt.Errorf("%w: unknown experience level %q", ErrInvalidKey, key.Level)
	}
	if key.Category != "" && !key.Category.Valid() {
		return clock.Period{}, fmt.Errorf("%w: unknown category %q", ErrInvalidKey, key.Category)
	}
	return period, nil
}

// Aggregate recomputes the aggregate for key from raw answers and overwrites
// the stored record. Concurrent calls for the same key share one run. The
// shared run is detached from any one caller's cancellation; a caller whose
// ctx ends stops waiting while the run completes for the others.
func (a *Aggregator) Aggregate(ctx context.Context, key store.AggregateKey) (store.TeamAggregate, error) {
	period, err := ValidateKey(key)
	if err != nil {
		return store.TeamAggregate{}, err
	}
	key.Period = period.String()

	ch := a.group.DoChan(flightKey(key), func() (any, error) {
		return a.compute(context.WithoutCancel(ctx), key, period)
	})
	select {
	case <-ctx.Done():
		return store.TeamAggregate{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return store.TeamAggregate{}, res.Err
		}
		if res.Shared {
			a.log.Debug("aggregate run shared", "period", key.Period, "level", key.Level, "category", key.Category)
		}
		return res.Val.(store.TeamAggregate), nil
	}
}

func (a *Aggregator) compute(ctx context.Context, key store.AggregateKey, period clock.Period) (store.TeamAggregate, error) {
	answers, err := a.repo.ListAnswersInPeriod(ctx, period, key.Category)
	if err != nil {
		return store.TeamAggregate{}, fmt.Errorf("list answers: %w", err)
	}

	type tally struct{ total, correct int }
	perUser := make(map[string]*tally)
	for _, ans := range answers {
		t, ok := perUser[ans.UserID]
		if !ok {
			t = &tally{}
			perUser[ans.UserID] = t
		}
		t.total++
		if ans.Correct {
			t.correct++
		}
	}

	if key.Level != "" {
		ids, err := a.repo.ListProfilesByLevel(ctx, key.Level)
		if err != nil {
			return store.TeamAggregate{}, fmt.Errorf("list profiles by level: %w", err)
		}
		allowed := make(map[string]bool, len(ids))
		for _, id := range ids {
			allowed[id] = true
		}
		for user := range perUser {
			if !allowed[user] {
				delete(perUser, user)
			}
		}
	}

	users := make([]string, 0, len(perUser))
	for user := range perUser {
		users = append(users, user)
	}
	sort.Strings(users)

	rates := make([]float64, 0, len(users))
	for _, user := range users {
		t := perUser[user]
		rates = append(rates, float64(t.correct)/float64(t.total))
	}
	sum := percentile.Summarize(rates)

	agg := store.TeamAggregate{
		Key:                key,
		AverageCorrectRate: sum.Mean,
		TotalQuizzes:       len(answers),
		ActiveUsers:        len(rates),
		Percentile25:       sum.P25,
		Percentile50:       sum.P50,
		Percentile75:       sum.P75,
		Percentile90:       sum.P90,
	}

	if err := a.repo.PutTeamAggregate(ctx, agg); err != nil {
		a.log.Error("put team aggregate failed", "period", key.Period, "error", err)
		return store.TeamAggregate{}, fmt.Errorf("put team aggregate: %w", err)
	}
	a.log.Info("aggregate computed",
		"period", key.Period,
		"level", key.Level,
		"category", key.Category,
		"active_users", agg.ActiveUsers,
		"total_quizzes", agg.TotalQuizzes,
	)
	return agg, nil
}

// Get returns the stored aggregate for key, or store.ErrNotFound.
func (a *Aggregator) Get(ctx context.Context, key store.AggregateKey) (store.TeamAggregate, error) {
	period, err := ValidateKey(key)
	if err != nil {
		return store.TeamAggregate{}, err
	}
	key.Period = period.String()

	agg, err := a.repo.GetTeamAggregate(ctx, key)
	if err != nil {
		return store.TeamAggregate{}, fmt.Errorf("get team aggregate: %w", err)
	}
	if agg == nil {
		return store.TeamAggregate{}, store.ErrNotFound
	}
	return *agg, nil
}

func flightKey(key store.AggregateKey) string {
	return key.Period + "|" + string(key.Level) + "|" + string(key.Category)
}
