package recommend

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/clock"
	"github.com/skillpulse/skillpulse/internal/store"
)

var now = clock.FromTime(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

func daysAgo(d int) clock.Timestamp {
	return clock.FromTime(now.Time().Add(-time.Duration(d) * 24 * time.Hour))
}

func stat(c category.Category, total, correct int, avg float64, last clock.Timestamp) store.CategoryStat {
	rate := 0.0
	if total > 0 {
		rate = float64(correct) / float64(total)
	}
	return store.CategoryStat{
		UserID:            "u1",
		Category:          c,
		TotalQuizzes:      total,
		CorrectCount:      correct,
		CorrectRate:       rate,
		AverageDifficulty: avg,
		LastAnsweredAt:    last,
	}
}

func testRNG() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestScoreCategory_HighestBand(t *testing.T) {
	p := &store.Profile{UserID: "u1", Level: category.Mid, FocusAreas: []category.Category{category.Security}}
	s := stat(category.Security, 10, 2, 1.5, daysAgo(10))

	got := ScoreCategory(p, category.Security, &s, now)

	assert.InDelta(t, 0.32, got.Weakness, 1e-9)
	assert.InDelta(t, 0.3, got.Focus, 1e-9)
	assert.InDelta(t, 0.2, got.Review, 1e-9)
	assert.InDelta(t, 0.1, got.Growth, 1e-9)
	assert.InDelta(t, 0.92, got.Total, 1e-9)

	scores := ScoreAll(p, []store.CategoryStat{s}, now)
	require.Len(t, scores, len(category.All()))
	assert.Equal(t, category.Security, scores[0].Category)
}

func TestScoreCategory_Components(t *testing.T) {
	tests := []struct {
		name     string
		stat     *store.CategoryStat
		weakness float64
		review   float64
		growth   float64
	}{
		{"never answered", nil, 0.2, 0.15, 0},
		{"zero attempts row", &store.CategoryStat{Category: category.Logic}, 0.2, 0.15, 0},
		{"two attempts neutral weakness", ptr(stat(category.Logic, 2, 0, 2, daysAgo(0))), 0.2, 0, 0},
		{"three attempts uses rate", ptr(stat(category.Logic, 3, 3, 2, daysAgo(0))), 0, 0, 0},
		{"answered 3 days ago", ptr(stat(category.Logic, 4, 2, 2, daysAgo(3))), 0.2, 0.1, 0},
		{"answered 6 days ago", ptr(stat(category.Logic, 4, 2, 2, daysAgo(6))), 0.2, 0.1, 0},
		{"answered 7 days ago", ptr(stat(category.Logic, 4, 2, 2, daysAgo(7))), 0.2, 0.2, 0},
		{"answered 2 days ago", ptr(stat(category.Logic, 4, 2, 2, daysAgo(2))), 0.2, 0, 0},
		{"easy skew", ptr(stat(category.Logic, 4, 2, 1.9, daysAgo(0))), 0.2, 0, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreCategory(nil, category.Logic, tt.stat, now)
			assert.InDelta(t, tt.weakness, got.Weakness, 1e-9)
			assert.Zero(t, got.Focus)
			assert.InDelta(t, tt.review, got.Review, 1e-9)
			assert.InDelta(t, tt.growth, got.Growth, 1e-9)
		})
	}
}

func TestSelectCategory_DrawsFromTopThree(t *testing.T) {
	p := &store.Profile{UserID: "u1", Level: category.Mid, FocusAreas: []category.Category{category.Security}}
	stats := []store.CategoryStat{
		stat(category.Security, 10, 2, 1.5, daysAgo(10)),
		stat(category.Logic, 10, 9, 3, daysAgo(0)),
		stat(category.BugFix, 10, 10, 3, daysAgo(0)),
	}

	rng := testRNG()
	seen := map[category.Category]int{}
	for i := 0; i < 300; i++ {
		seen[SelectCategory(p, stats, rng, now)]++
	}

	assert.Len(t, seen, 3)
	assert.Positive(t, seen[category.Security])
	assert.Positive(t, seen[category.Performance])
	assert.Positive(t, seen[category.Refactoring])
	assert.Zero(t, seen[category.Logic])
	assert.Zero(t, seen[category.BugFix])
}

func TestSelectCategory_NoProfileOrStatsIsUniform(t *testing.T) {
	stats := []store.CategoryStat{stat(category.Logic, 10, 0, 1, daysAgo(30))}

	for name, tc := range map[string]struct {
		p     *store.Profile
		stats []store.CategoryStat
	}{
		"no profile": {nil, stats},
		"no stats":   {&store.Profile{Level: category.Mid}, nil},
	} {
		t.Run(name, func(t *testing.T) {
			rng := testRNG()
			seen := map[category.Category]bool{}
			for i := 0; i < 500; i++ {
				seen[SelectCategory(tc.p, tc.stats, rng, now)] = true
			}
			assert.Len(t, seen, len(category.All()))
		})
	}
}

func TestSelectCategory_SeededIsDeterministic(t *testing.T) {
	p := &store.Profile{Level: category.Mid}
	stats := []store.CategoryStat{stat(category.Logic, 5, 1, 2, daysAgo(8))}

	a, b := testRNG(), testRNG()
	for i := 0; i < 50; i++ {
		assert.Equal(t, SelectCategory(p, stats, a, now), SelectCategory(p, stats, b, now))
	}
}

func TestSelectDifficulty(t *testing.T) {
	junior := &store.Profile{Level: category.Junior}
	mid := &store.Profile{Level: category.Mid}
	senior := &store.Profile{Level: category.Senior}
	unknown := &store.Profile{Level: "staff"}

	tests := []struct {
		name string
		p    *store.Profile
		stat *store.CategoryStat
		want category.Difficulty
	}{
		{"no profile", nil, ptr(stat(category.Logic, 10, 10, 3, now)), category.Easy},
		{"junior baseline", junior, nil, category.Easy},
		{"mid baseline", mid, nil, category.Medium},
		{"senior baseline", senior, nil, category.Hard},
		{"unknown level", unknown, nil, category.Medium},
		{"too few attempts", mid, ptr(stat(category.Logic, 4, 4, 2, now)), category.Medium},
		{"mid escalates", mid, ptr(stat(category.Logic, 5, 4, 2, now)), category.Hard},
		{"senior clamps up", senior, ptr(stat(category.Logic, 5, 5, 2, now)), category.Hard},
		{"mid de-escalates", mid, ptr(stat(category.Logic, 5, 2, 2, now)), category.Easy},
		{"junior clamps down", junior, ptr(stat(category.Logic, 5, 0, 2, now)), category.Easy},
		{"mid stays", mid, ptr(stat(category.Logic, 10, 6, 2, now)), category.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectDifficulty(tt.p, tt.stat))
		})
	}
}

func TestRecommender_Next(t *testing.T) {
	r := NewSeeded(42, clock.Fixed(now))
	p := &store.Profile{Level: category.Senior}
	stats := []store.CategoryStat{stat(category.Logic, 10, 2, 3, daysAgo(9))}

	pick := r.Next(p, stats)
	assert.True(t, pick.Category.Valid())
	if pick.Category == category.Logic {
		assert.Equal(t, category.Medium, pick.Difficulty)
	} else {
		assert.Equal(t, category.Hard, pick.Difficulty)
	}
}

func TestRecommend_NoStats(t *testing.T) {
	sum := Recommend(nil, nil, store.UserTotals{})
	assert.Empty(t, sum.WeakAreas)
	assert.Empty(t, sum.SuggestedFocus)
	require.Len(t, sum.NextSteps, 1)
	assert.Contains(t, sum.NextSteps[0], "Start answering")
}

func TestRecommend_WeakAreasSortedWithPriority(t *testing.T) {
	stats := []store.CategoryStat{
		stat(category.Logic, 10, 5, 2, now),       // 0.5 low
		stat(category.Security, 10, 2, 2, now),    // 0.2 high
		stat(category.Performance, 10, 4, 2, now), // 0.4 medium
		stat(category.BugFix, 2, 0, 2, now),       // too few attempts
		stat(category.Refactoring, 10, 6, 2, now), // 0.6 not weak
	}

	sum := Recommend(nil, stats, store.UserTotals{TotalAnswers: 42})

	require.Len(t, sum.WeakAreas, 3)
	assert.Equal(t, category.Security, sum.WeakAreas[0].Category)
	assert.Equal(t, PriorityHigh, sum.WeakAreas[0].Priority)
	assert.Equal(t, category.Performance, sum.WeakAreas[1].Category)
	assert.Equal(t, PriorityMedium, sum.WeakAreas[1].Priority)
	assert.Equal(t, category.Logic, sum.WeakAreas[2].Category)
	assert.Equal(t, PriorityLow, sum.WeakAreas[2].Priority)

	assert.Equal(t, []category.Category{category.Security}, sum.SuggestedFocus)
	require.NotEmpty(t, sum.NextSteps)
	assert.Contains(t, sum.NextSteps[0], "Security")
	assert.Contains(t, sum.NextSteps[0], "20%")
}

func TestRecommend_ProfileFocusMasteryAndLevelUp(t *testing.T) {
	p := &store.Profile{Level: category.Junior, FocusAreas: []category.Category{category.Performance, category.Logic}}
	stats := []store.CategoryStat{
		stat(category.Security, 5, 4, 2, now),
		stat(category.Logic, 3, 0, 2, now),
	}

	sum := Recommend(p, stats, store.UserTotals{TotalAnswers: 50})

	assert.Equal(t, []category.Category{category.Performance, category.Logic}, sum.SuggestedFocus)
	require.Len(t, sum.NextSteps, 3)
	assert.Contains(t, sum.NextSteps[0], "Logic")
	assert.Contains(t, sum.NextSteps[1], "mastered Security")
	assert.Contains(t, sum.NextSteps[2], "mid")
}

func TestRecommend_NoLevelUpBelowFifty(t *testing.T) {
	p := &store.Profile{Level: category.Junior}
	stats := []store.CategoryStat{stat(category.Logic, 10, 7, 2, now)}

	sum := Recommend(p, stats, store.UserTotals{TotalAnswers: 49})
	for _, step := range sum.NextSteps {
		assert.NotContains(t, step, "level up")
	}
}

func ptr[T any](v T) *T { return &v }
