package team

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/clock"
	"github.com/skillpulse/skillpulse/internal/store"
)

var march = clock.FromTime(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

func addAnswers(t *testing.T, repo store.StatsRepo, user string, cat category.Category, correct, total int, at clock.Timestamp) {
	t.Helper()
	for i := 0; i < total; i++ {
		rec := &store.AnswerRecord{
			QuizID:     fmt.Sprintf("q-%s-%d", user, i),
			UserID:     user,
			Category:   cat,
			Difficulty: category.Medium,
			Correct:    i < correct,
			AnsweredAt: at,
		}
		require.NoError(t, repo.AppendAnswer(context.Background(), rec))
	}
}

func putProfile(t *testing.T, repo store.StatsRepo, user string, level category.Level) {
	t.Helper()
	require.NoError(t, repo.PutProfile(context.Background(), store.Profile{UserID: user, Level: level}))
}

func openSQLite(t *testing.T) store.StatsRepo {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.StatsRepo()
}

func repos(t *testing.T) map[string]func(t *testing.T) store.StatsRepo {
	return map[string]func(t *testing.T) store.StatsRepo{
		"memory": func(*testing.T) store.StatsRepo { return store.NewMemoryRepo() },
		"sqlite": openSQLite,
	}
}

func TestAggregate_NearestRankPercentiles(t *testing.T) {
	for name, open := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)
			addAnswers(t, repo, "a", category.Logic, 1, 5, march) // 0.2
			addAnswers(t, repo, "b", category.Logic, 2, 5, march) // 0.4
			addAnswers(t, repo, "c", category.Logic, 3, 5, march) // 0.6
			addAnswers(t, repo, "d", category.Logic, 4, 5, march) // 0.8

			agg, err := NewAggregator(repo, nil).Aggregate(ctx, store.AggregateKey{Period: "2026-03"})
			require.NoError(t, err)

			assert.Equal(t, 4, agg.ActiveUsers)
			assert.Equal(t, 20, agg.TotalQuizzes)
			assert.Equal(t, 0.4, agg.Percentile25)
			assert.Equal(t, 0.6, agg.Percentile50)
			assert.Equal(t, 0.8, agg.Percentile75)
			assert.Equal(t, 0.8, agg.Percentile90)
			assert.InDelta(t, 0.5, agg.AverageCorrectRate, 1e-12)

			stored, err := repo.GetTeamAggregate(ctx, agg.Key)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, agg, *stored)
		})
	}
}

func TestAggregate_PeriodAndCategoryFilter(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepo()
	april := clock.FromTime(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	lastFeb := clock.FromTime(time.Date(2026, 2, 28, 23, 59, 59, 999999999, time.UTC))

	addAnswers(t, repo, "a", category.Logic, 2, 2, march)
	addAnswers(t, repo, "a", category.Security, 0, 2, march)
	addAnswers(t, repo, "b", category.Logic, 0, 3, april)
	addAnswers(t, repo, "c", category.Logic, 0, 3, lastFeb)

	agg, err := NewAggregator(repo, nil).Aggregate(ctx, store.AggregateKey{Period: "2026-03", Category: category.Logic})
	require.NoError(t, err)
	assert.Equal(t, 1, agg.ActiveUsers)
	assert.Equal(t, 2, agg.TotalQuizzes)
	assert.Equal(t, 1.0, agg.Percentile50)

	agg, err = NewAggregator(repo, nil).Aggregate(ctx, store.AggregateKey{Period: "2026-03"})
	require.NoError(t, err)
	assert.Equal(t, 4, agg.TotalQuizzes)
	assert.Equal(t, 0.5, agg.AverageCorrectRate)
}

func TestAggregate_LevelFilterExcludesUnprofiled(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepo()
	addAnswers(t, repo, "jr", category.Logic, 1, 4, march)
	addAnswers(t, repo, "sr", category.Logic, 4, 4, march)
	addAnswers(t, repo, "anon", category.Logic, 2, 4, march)
	putProfile(t, repo, "jr", category.Junior)
	putProfile(t, repo, "sr", category.Senior)

	agg, err := NewAggregator(repo, nil).Aggregate(ctx, store.AggregateKey{Period: "2026-03", Level: category.Junior})
	require.NoError(t, err)
	assert.Equal(t, 1, agg.ActiveUsers)
	assert.Equal(t, 0.25, agg.AverageCorrectRate)
	assert.Equal(t, 12, agg.TotalQuizzes)
}

func TestAggregate_NoQualifyingUsers(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepo()
	addAnswers(t, repo, "anon", category.Logic, 3, 3, march)

	agg, err := NewAggregator(repo, nil).Aggregate(ctx, store.AggregateKey{Period: "2026-03", Level: category.Mid})
	require.NoError(t, err)
	assert.Equal(t, store.TeamAggregate{
		Key:          store.AggregateKey{Period: "2026-03", Level: category.Mid},
		TotalQuizzes: 3,
	}, agg)
}

func TestAggregate_IdempotentOverwrite(t *testing.T) {
	for name, open := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)
			for i, user := range []string{"a", "b", "c", "d", "e", "f", "g"} {
				addAnswers(t, repo, user, category.Performance, i, 7, march)
			}
			agg := NewAggregator(repo, nil)
			key := store.AggregateKey{Period: "2026-03", Category: category.Performance}

			first, err := agg.Aggregate(ctx, key)
			require.NoError(t, err)
			second, err := agg.Aggregate(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, first, second)

			stored, err := agg.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, first, stored)

			// new data replaces the record rather than accumulating
			addAnswers(t, repo, "h", category.Performance, 7, 7, march)
			third, err := agg.Aggregate(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, 8, third.ActiveUsers)
			assert.Equal(t, 56, third.TotalQuizzes)
		})
	}
}

func TestAggregate_ConcurrentSameKey(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepo()
	addAnswers(t, repo, "a", category.Logic, 1, 2, march)
	agg := NewAggregator(repo, nil)
	key := store.AggregateKey{Period: "2026-03"}

	var wg sync.WaitGroup
	results := make([]store.TeamAggregate, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := agg.Aggregate(ctx, key)
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}

func TestAggregate_InvalidKey(t *testing.T) {
	agg := NewAggregator(store.NewMemoryRepo(), nil)
	for _, key := range []store.AggregateKey{
		{Period: "2026-13"},
		{Period: "March"},
		{Period: "2026-03", Level: "guru"},
		{Period: "2026-03", Category: "cooking"},
	} {
		_, err := agg.Aggregate(context.Background(), key)
		assert.True(t, errors.Is(err, ErrInvalidKey), "%+v", key)
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := NewAggregator(store.NewMemoryRepo(), nil).Get(context.Background(), store.AggregateKey{Period: "2026-03"})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

// gatedRepo blocks period scans until release is closed, honouring ctx.
type gatedRepo struct {
	*store.MemoryRepo
	entered chan struct{}
	once    sync.Once
	release chan struct{}
}

func (g *gatedRepo) ListAnswersInPeriod(ctx context.Context, period clock.Period, cat category.Category) ([]store.AnswerRecord, error) {
	g.once.Do(func() { close(g.entered) })
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.MemoryRepo.ListAnswersInPeriod(ctx, period, cat)
}

func TestAggregate_CancelledCallerDoesNotFailSharedRun(t *testing.T) {
	repo := &gatedRepo{MemoryRepo: store.NewMemoryRepo(), entered: make(chan struct{}), release: make(chan struct{})}
	addAnswers(t, repo.MemoryRepo, "a", category.Logic, 3, 4, march)
	agg := NewAggregator(repo, nil)
	key := store.AggregateKey{Period: "2026-03"}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := agg.Aggregate(ctx, key)
		firstErr <- err
	}()
	<-repo.entered

	type result struct {
		agg store.TeamAggregate
		err error
	}
	second := make(chan result, 1)
	go func() {
		got, err := agg.Aggregate(context.Background(), key)
		second <- result{got, err}
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(repo.release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, 1, res.agg.ActiveUsers)
	assert.Equal(t, 0.75, res.agg.AverageCorrectRate)

	stored, err := agg.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, res.agg, stored)
}
