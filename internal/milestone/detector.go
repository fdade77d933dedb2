// Package milestone detects and awards growth milestones.
package milestone

import (
	"context"
	"fmt"
	"strconv"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/store"
)

// Milestone types.
const (
	FirstCorrect    = "first-correct"
	CategoryMastery = "category-mastery"
	AnswerCount     = "answer-count"
)

// Mastery requires at least MasteryMinAttempts answers at MasteryRate or better.
const (
	MasteryRate        = 0.8
	MasteryMinAttempts = 5
)

// Thresholds are the cumulative answer counts that award a milestone.
var Thresholds = []int{10, 50, 100, 500, 1000}

// Input is the state right after one answer was recorded.
type Input struct {
	UserID   string
	QuizID   string
	Category category.Category
	Correct  bool
	Totals   store.UserTotals
	Stat     store.CategoryStat
}

// Candidate is a milestone that fired but is not yet stored.
type Candidate struct {
	Type        string
	Category    category.Category
	Scope       string
	Achievement string
	Metadata    map[string]any
}

// ThresholdScope is the scope string of an answer-count milestone.
func ThresholdScope(threshold int) string {
	return strconv.Itoa(threshold)
}

// Detector evaluates the milestone rules.
type Detector struct {
	repo store.StatsRepo
}

// NewDetector creates a detector reading prior milestones from repo.
func NewDetector(repo store.StatsRepo) *Detector {
	return &Detector{repo: repo}
}

// Detect returns every milestone the answer unlocked. Rules are independent,
// so more than one may fire.
func (d *Detector) Detect(ctx context.Context, in Input) ([]Candidate, error) {
	var out []Candidate

	if in.Correct && in.Totals.TotalCorrect == 1 {
		out = append(out, Candidate{
			Type:        FirstCorrect,
			Category:    in.Category,
			Achievement: "First correct answer",
			Metadata: map[string]any{
				"quiz_id":  in.QuizID,
				"category": string(in.Category),
			},
		})
	}

	if mastered(in.Stat) {
		prior, err := d.repo.ListMilestones(ctx, in.UserID, CategoryMastery, in.Category)
		if err != nil {
			return nil, fmt.Errorf("list mastery milestones: %w", err)
		}
		if len(prior) == 0 {
			out = append(out, Candidate{
				Type:     CategoryMastery,
				Category: in.Category,
				Scope:    string(in.Category),
				Achievement: fmt.Sprintf("Mastered %s: %.0f%% correct over %d quizzes",
					in.Category.DisplayName(), in.Stat.CorrectRate*100, in.Stat.TotalQuizzes),
				Metadata: map[string]any{
					"quiz_id":       in.QuizID,
					"category":      string(in.Category),
					"correct_rate":  in.Stat.CorrectRate,
					"total_quizzes": in.Stat.TotalQuizzes,
				},
			})
		}
	}

	for _, th := range Thresholds {
		if in.Totals.TotalAnswers != th {
			continue
		}
		out = append(out, Candidate{
			Type:        AnswerCount,
			Scope:       ThresholdScope(th),
			Achievement: fmt.Sprintf("Answered %d quizzes", th),
			Metadata: map[string]any{
				"quiz_id":       in.QuizID,
				"threshold":     th,
				"total_answers": in.Totals.TotalAnswers,
				"total_correct": in.Totals.TotalCorrect,
			},
		})
	}

	return out, nil
}

func mastered(s store.CategoryStat) bool {
	return s.TotalQuizzes >= MasteryMinAttempts && s.CorrectRate >= MasteryRate
}
