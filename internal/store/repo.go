package store

import (
	"context"
	"errors"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/clock"
)

// ErrNotFound is returned by callers that require an entity to exist.
// Repositories themselves return nil records for absent rows.
var ErrNotFound = errors.New("not found")

// CategoryStat is the running skill record for one (user, category) pair.
type CategoryStat struct {
	UserID            string            `json:"user_id"`
	Category          category.Category `json:"category"`
	TotalQuizzes      int               `json:"total_quizzes"`
	CorrectCount      int               `json:"correct_count"`
	CorrectRate       float64           `json:"correct_rate"`
	AverageDifficulty float64           `json:"average_difficulty"`
	LastAnsweredAt    clock.Timestamp   `json:"last_answered_at"`
	// Trend fields are carried in the record but not computed.
	WeeklyTrend  float64 `json:"weekly_trend"`
	MonthlyTrend float64 `json:"monthly_trend"`
}

// AnswerRecord is one append-only quiz answer.
type AnswerRecord struct {
	ID            string              `json:"id"`
	Sequence      int64               `json:"sequence"`
	QuizID        string              `json:"quiz_id"`
	UserID        string              `json:"user_id"`
	Category      category.Category   `json:"category"`
	Difficulty    category.Difficulty `json:"difficulty"`
	SelectedIndex int                 `json:"selected_index"`
	Correct       bool                `json:"correct"`
	AnsweredAt    clock.Timestamp     `json:"answered_at"`
}

// MilestoneRecord is an awarded achievement. Scope identifies the instance
// within (user, type): the category for mastery, the threshold for answer
// counts, empty otherwise.
type MilestoneRecord struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Type        string            `json:"type"`
	Category    category.Category `json:"category,omitempty"`
	Scope       string            `json:"scope,omitempty"`
	Achievement string            `json:"achievement"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
	AchievedAt  clock.Timestamp   `json:"achieved_at"`
}

// Profile is a user's self-declared profile.
type Profile struct {
	UserID            string                    `json:"user_id"`
	Level             category.Level            `json:"experience_level"`
	YearsOfExperience float64                   `json:"years_of_experience"`
	FocusAreas        []category.Category       `json:"focus_areas,omitempty"`
	Goal              string                    `json:"goal,omitempty"`
	SelfAssessment    map[category.Category]int `json:"self_assessment,omitempty"`
	CreatedAt         clock.Timestamp           `json:"created_at"`
	UpdatedAt         clock.Timestamp           `json:"updated_at"`
}

// HasFocus reports whether c is one of the profile's focus areas.
func (p *Profile) HasFocus(c category.Category) bool {
	if p == nil {
		return false
	}
	for _, f := range p.FocusAreas {
		if f == c {
			return true
		}
	}
	return false
}

// UserTotals are a user's cumulative answer counters across all categories.
type UserTotals struct {
	UserID       string `json:"user_id"`
	TotalAnswers int    `json:"total_answers"`
	TotalCorrect int    `json:"total_correct"`
}

// AggregateKey identifies one team aggregate. Empty Level or Category means
// the dimension is not filtered.
type AggregateKey struct {
	Period   string            `json:"period"`
	Level    category.Level    `json:"experience_level,omitempty"`
	Category category.Category `json:"category,omitempty"`
}

// TeamAggregate is a materialized cohort summary for one key. It carries no
// computation time so that recomputing unchanged data yields an identical record.
type TeamAggregate struct {
	Key                AggregateKey `json:"key"`
	AverageCorrectRate float64      `json:"average_correct_rate"`
	TotalQuizzes       int          `json:"total_quizzes"`
	ActiveUsers        int          `json:"active_users"`
	Percentile25       float64      `json:"percentile_25"`
	Percentile50       float64      `json:"percentile_50"`
	Percentile75       float64      `json:"percentile_75"`
	Percentile90       float64      `json:"percentile_90"`
}

// StatsRepo is the durable storage used by the analytics engine.
type StatsRepo interface {
	// GetCategoryStat returns the stat for (user, category), or nil if none exists.
	GetCategoryStat(ctx context.Context, userID string, cat category.Category) (*CategoryStat, error)

	// PutCategoryStat creates or replaces the stat keyed by (user, category).
	PutCategoryStat(ctx context.Context, stat CategoryStat) error

	// ListCategoryStats returns every stat for a user ordered by category.
	ListCategoryStats(ctx context.Context, userID string) ([]CategoryStat, error)

	// AppendAnswer stores a new answer and assigns its sequence number.
	AppendAnswer(ctx context.Context, rec *AnswerRecord) error

	// RecordAnswer appends rec, counts it in the user's totals and writes
	// stat as one unit. On error none of the three is applied and rec is
	// left unchanged.
	RecordAnswer(ctx context.Context, rec *AnswerRecord, stat CategoryStat) (UserTotals, error)

	// ListAnswersInPeriod returns answers inside the period, optionally
	// restricted to a category (empty means all), in sequence order.
	ListAnswersInPeriod(ctx context.Context, period clock.Period, cat category.Category) ([]AnswerRecord, error)

	// IncrementUserTotals atomically counts one answer and returns the new totals.
	IncrementUserTotals(ctx context.Context, userID string, correct bool) (UserTotals, error)

	// GetUserTotals returns a user's totals; zero counts when none exist.
	GetUserTotals(ctx context.Context, userID string) (UserTotals, error)

	// ListMilestones returns milestones of one type for a user, optionally
	// restricted to a category (empty means any).
	ListMilestones(ctx context.Context, userID, milestoneType string, cat category.Category) ([]MilestoneRecord, error)

	// ListMilestonesByUser returns all milestones of a user, oldest first.
	ListMilestonesByUser(ctx context.Context, userID string) ([]MilestoneRecord, error)

	// InsertMilestone stores a milestone unless one with the same
	// (user, type, scope) exists. Reports whether a row was written.
	InsertMilestone(ctx context.Context, rec MilestoneRecord) (bool, error)

	// GetProfile returns the user's profile, or nil if none exists.
	GetProfile(ctx context.Context, userID string) (*Profile, error)

	// PutProfile creates or replaces a profile.
	PutProfile(ctx context.Context, p Profile) error

	// ListProfilesByLevel returns the ids of users at the given level.
	ListProfilesByLevel(ctx context.Context, level category.Level) ([]string, error)

	// PutTeamAggregate overwrites the aggregate stored under its key.
	PutTeamAggregate(ctx context.Context, agg TeamAggregate) error

	// GetTeamAggregate returns the aggregate for key, or nil if none exists.
	GetTeamAggregate(ctx context.Context, key AggregateKey) (*TeamAggregate, error)
}
