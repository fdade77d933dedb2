package recommend

import (
	"fmt"
	"sort"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/store"
)

// Priority ranks a weak area.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

const (
	// WeakRate is the correct rate below which a category is weak.
	WeakRate = 0.6
	// MasteredRate and MasteredAttempts define a mastered category.
	MasteredRate     = 0.8
	MasteredAttempts = 5
	// LevelUpAnswers is the cumulative answer count after which juniors are
	// nudged towards mid level.
	LevelUpAnswers = 50
)

// WeakArea is a category the user is struggling with.
type WeakArea struct {
	Category     category.Category `json:"category"`
	CorrectRate  float64           `json:"correct_rate"`
	TotalQuizzes int               `json:"total_quizzes"`
	Priority     Priority          `json:"priority"`
}

// Summary is the recommendation bundle shown to a user.
type Summary struct {
	WeakAreas      []WeakArea          `json:"weak_areas"`
	SuggestedFocus []category.Category `json:"suggested_focus"`
	NextSteps      []string            `json:"next_steps"`
}

func priorityFor(rate float64) Priority {
	switch {
	case rate < 0.3:
		return PriorityHigh
	case rate < 0.5:
		return PriorityMedium
	}
	return PriorityLow
}

// Recommend builds the summary from a user's profile (may be nil), stats and
// cumulative totals.
func Recommend(p *store.Profile, stats []store.CategoryStat, totals store.UserTotals) Summary {
	sum := Summary{
		WeakAreas:      []WeakArea{},
		SuggestedFocus: []category.Category{},
	}

	if !hasData(stats) {
		if p != nil {
			sum.SuggestedFocus = append(sum.SuggestedFocus, p.FocusAreas...)
		}
		sum.NextSteps = []string{"Start answering quizzes to build your skill profile."}
		return sum
	}

	for _, s := range stats {
		if s.TotalQuizzes >= MinWeaknessAttempts && s.CorrectRate < WeakRate {
			sum.WeakAreas = append(sum.WeakAreas, WeakArea{
				Category:     s.Category,
				CorrectRate:  s.CorrectRate,
				TotalQuizzes: s.TotalQuizzes,
				Priority:     priorityFor(s.CorrectRate),
			})
		}
	}
	sort.SliceStable(sum.WeakAreas, func(i, j int) bool {
		return sum.WeakAreas[i].CorrectRate < sum.WeakAreas[j].CorrectRate
	})

	switch {
	case p != nil && len(p.FocusAreas) > 0:
		sum.SuggestedFocus = append(sum.SuggestedFocus, p.FocusAreas...)
	case len(sum.WeakAreas) > 0:
		sum.SuggestedFocus = append(sum.SuggestedFocus, sum.WeakAreas[0].Category)
	}

	if len(sum.WeakAreas) > 0 {
		w := sum.WeakAreas[0]
		sum.NextSteps = append(sum.NextSteps, fmt.Sprintf(
			"Practice %s: your correct rate is %.0f%% over %d quizzes.",
			w.Category.DisplayName(), w.CorrectRate*100, w.TotalQuizzes))
	}

	for _, c := range category.All() {
		for _, s := range stats {
			if s.Category != c || s.TotalQuizzes < MasteredAttempts || s.CorrectRate < MasteredRate {
				continue
			}
			sum.NextSteps = append(sum.NextSteps, fmt.Sprintf(
				"You have mastered %s (%.0f%%). Try harder quizzes there.",
				c.DisplayName(), s.CorrectRate*100))
		}
	}

	if p != nil && p.Level == category.Junior && totals.TotalAnswers >= LevelUpAnswers {
		sum.NextSteps = append(sum.NextSteps, fmt.Sprintf(
			"You have answered %d quizzes. Consider moving your level up to mid.", totals.TotalAnswers))
	}

	if len(sum.NextSteps) == 0 {
		sum.NextSteps = append(sum.NextSteps, "Keep going: answer more quizzes to surface weak spots.")
	}
	return sum
}
