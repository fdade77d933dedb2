package skill

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/clock"
	"github.com/skillpulse/skillpulse/internal/keylock"
	"github.com/skillpulse/skillpulse/internal/store"
)

var now = clock.Timestamp{Seconds: 1_700_000_000, Nanos: 5}

func answer(user string, cat category.Category, diff category.Difficulty, correct bool) *store.AnswerRecord {
	return &store.AnswerRecord{QuizID: "q", UserID: user, Category: cat, Difficulty: diff, Correct: correct}
}

func TestApplyOutcome_First(t *testing.T) {
	s := ApplyOutcome(nil, "u1", category.Logic, category.Hard, true, now)

	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, category.Logic, s.Category)
	assert.Equal(t, 1, s.TotalQuizzes)
	assert.Equal(t, 1, s.CorrectCount)
	assert.Equal(t, 1.0, s.CorrectRate)
	assert.Equal(t, 3.0, s.AverageDifficulty)
	assert.Equal(t, now, s.LastAnsweredAt)
}

func TestApplyOutcome_ZeroStatSameAsNil(t *testing.T) {
	zero := &store.CategoryStat{UserID: "u1", Category: category.Logic}
	assert.Equal(t,
		ApplyOutcome(nil, "u1", category.Logic, category.Easy, false, now),
		ApplyOutcome(zero, "u1", category.Logic, category.Easy, false, now))
}

func TestApplyOutcome_DoesNotMutateInput(t *testing.T) {
	in := &store.CategoryStat{UserID: "u1", Category: category.Logic, TotalQuizzes: 2, CorrectCount: 1, CorrectRate: 0.5, AverageDifficulty: 2}
	_ = ApplyOutcome(in, "u1", category.Logic, category.Hard, true, now)
	assert.Equal(t, 2, in.TotalQuizzes)
}

func TestApplyOutcome_RunningMeanAndBounds(t *testing.T) {
	seqs := [][]category.Difficulty{
		{category.Easy},
		{category.Easy, category.Hard},
		{category.Medium, category.Medium, category.Hard, category.Easy, category.Easy},
		{category.Hard, category.Hard, category.Hard, category.Easy, category.Medium, category.Easy, category.Hard},
	}

	for i, seq := range seqs {
		var stat *store.CategoryStat
		sum := 0.0
		for j, d := range seq {
			correct := (i+j)%3 != 0
			s := ApplyOutcome(stat, "u1", category.Performance, d, correct, now)
			stat = &s
			sum += d.Value()

			require.LessOrEqual(t, stat.CorrectCount, stat.TotalQuizzes)
			assert.InDelta(t, float64(stat.CorrectCount)/float64(stat.TotalQuizzes), stat.CorrectRate, 1e-12)
		}
		assert.Equal(t, len(seq), stat.TotalQuizzes)
		assert.InDelta(t, sum/float64(len(seq)), stat.AverageDifficulty, 1e-9, "seq %d", i)
	}
}

func TestTracker_SecurityScenario(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(store.NewMemoryRepo(), keylock.NewLocal(), clock.Fixed(now), nil)

	var (
		last   store.CategoryStat
		totals store.UserTotals
	)
	for _, correct := range []bool{true, true, true, true, false} {
		var err error
		last, totals, err = tr.Record(ctx, answer("u1", category.Security, category.Medium, correct))
		require.NoError(t, err)
	}

	assert.Equal(t, store.UserTotals{UserID: "u1", TotalAnswers: 5, TotalCorrect: 4}, totals)
	assert.Equal(t, now, last.LastAnsweredAt)
	assert.Equal(t, 5, last.TotalQuizzes)
	assert.Equal(t, 4, last.CorrectCount)
	assert.InDelta(t, 0.8, last.CorrectRate, 1e-12)
	assert.Equal(t, 2.0, last.AverageDifficulty)
}

func TestTracker_ConcurrentAnswersNoLostUpdates(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryRepo()
	tr := NewTracker(repo, keylock.NewLocal(), clock.System{}, nil)

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := tr.Record(ctx, answer("u1", category.BugFix, category.Easy, i%2 == 0))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stat, err := repo.GetCategoryStat(ctx, "u1", category.BugFix)
	require.NoError(t, err)
	require.NotNil(t, stat)
	assert.Equal(t, n, stat.TotalQuizzes)
	assert.Equal(t, n/2, stat.CorrectCount)

	totals, err := repo.GetUserTotals(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, n, totals.TotalAnswers)
}

type failingRepo struct {
	*store.MemoryRepo
	err error
}

func (f failingRepo) RecordAnswer(context.Context, *store.AnswerRecord, store.CategoryStat) (store.UserTotals, error) {
	return store.UserTotals{}, f.err
}

func TestTracker_StorageErrorPropagates(t *testing.T) {
	boom := errors.New("disk full")
	tr := NewTracker(failingRepo{store.NewMemoryRepo(), boom}, keylock.NewLocal(), clock.Fixed(now), nil)

	_, _, err := tr.Record(context.Background(), answer("u1", category.Logic, category.Easy, true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}
