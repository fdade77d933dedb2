// Package engine wires the analytics components together: recording an
// answer updates statistics and awards milestones, and the read side serves
// stats, recommendations and team benchmarks.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/clock"
	"github.com/skillpulse/skillpulse/internal/command"
	"github.com/skillpulse/skillpulse/internal/keylock"
	"github.com/skillpulse/skillpulse/internal/logger"
	"github.com/skillpulse/skillpulse/internal/milestone"
	"github.com/skillpulse/skillpulse/internal/profile"
	"github.com/skillpulse/skillpulse/internal/recommend"
	"github.com/skillpulse/skillpulse/internal/skill"
	"github.com/skillpulse/skillpulse/internal/store"
	"github.com/skillpulse/skillpulse/internal/team"
)

// ErrInvalidInput is wrapped by every ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports a malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Options configures an Engine. Zero values pick in-process defaults.
type Options struct {
	Repo   store.StatsRepo
	Locker keylock.Locker
	Clock  clock.Clock
	Rand   *rand.Rand
	Logger *logger.Logger
}

// Engine is the entry point for all analytics operations.
type Engine struct {
	repo        store.StatsRepo
	clock       clock.Clock
	log         *logger.Logger
	tracker     *skill.Tracker
	milestones  *milestone.Service
	profiles    *profile.Service
	recommender *recommend.Recommender
	aggregator  *team.Aggregator
}

// New creates an engine over opts.Repo.
func New(opts Options) *Engine {
	if opts.Locker == nil {
		opts.Locker = keylock.NewLocal()
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Engine{
		repo:        opts.Repo,
		clock:       opts.Clock,
		log:         opts.Logger,
		tracker:     skill.NewTracker(opts.Repo, opts.Locker, opts.Clock, opts.Logger),
		milestones:  milestone.NewService(opts.Repo, opts.Locker, opts.Clock, opts.Logger),
		profiles:    profile.NewService(opts.Repo, opts.Locker, opts.Clock, opts.Logger),
		recommender: recommend.New(opts.Rand, opts.Clock),
		aggregator:  team.NewAggregator(opts.Repo, opts.Logger),
	}
}

// AnswerInput is one submitted quiz answer. Indexes are 0-based.
type AnswerInput struct {
	UserID        string              `json:"user_id"`
	QuizID        string              `json:"quiz_id"`
	Category      category.Category   `json:"category"`
	Difficulty    category.Difficulty `json:"difficulty"`
	SelectedIndex int                 `json:"selected_index"`
	CorrectIndex  int                 `json:"correct_index"`
}

// AnswerResult is what recording an answer changed.
type AnswerResult struct {
	AnswerID   string                  `json:"answer_id"`
	Correct    bool                    `json:"correct"`
	Stat       store.CategoryStat      `json:"stat"`
	Totals     store.UserTotals        `json:"totals"`
	Milestones []store.MilestoneRecord `json:"milestones"`
}

// MaxChoices is the number of options per quiz.
const MaxChoices = 4

func (in AnswerInput) validate() error {
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return &ValidationError{Field: "user_id", Reason: "must not be empty"}
	case strings.TrimSpace(in.QuizID) == "":
		return &ValidationError{Field: "quiz_id", Reason: "must not be empty"}
	case !in.Category.Valid():
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", in.Category)}
	case !in.Difficulty.Valid():
		return &ValidationError{Field: "difficulty", Reason: fmt.Sprintf("unknown difficulty %q", in.Difficulty)}
	case in.SelectedIndex < 0 || in.SelectedIndex >= MaxChoices:
		return &ValidationError{Field: "selected_index", Reason: fmt.Sprintf("must be 0-%d", MaxChoices-1)}
	case in.CorrectIndex < 0 || in.CorrectIndex >= MaxChoices:
		return &ValidationError{Field: "correct_index", Reason: fmt.Sprintf("must be 0-%d", MaxChoices-1)}
	}
	return nil
}

// RecordAnswer stores the answer, folds it into the category statistics and
// the user's totals, and awards any milestones it unlocked.
func (e *Engine) RecordAnswer(ctx context.Context, in AnswerInput) (AnswerResult, error) {
	if err := in.validate(); err != nil {
		return AnswerResult{}, err
	}
	correct := in.SelectedIndex == in.CorrectIndex

	rec := &store.AnswerRecord{
		ID:            uuid.NewString(),
		QuizID:        in.QuizID,
		UserID:        in.UserID,
		Category:      in.Category,
		Difficulty:    in.Difficulty,
		SelectedIndex: in.SelectedIndex,
		Correct:       correct,
		AnsweredAt:    e.clock.Now(),
	}
	stat, totals, err := e.tracker.Record(ctx, rec)
	if err != nil {
		return AnswerResult{}, err
	}

	awarded, err := e.milestones.Evaluate(ctx, milestone.Input{
		UserID:   in.UserID,
		QuizID:   in.QuizID,
		Category: in.Category,
		Correct:  correct,
		Totals:   totals,
		Stat:     stat,
	})
	if err != nil {
		return AnswerResult{}, err
	}

	e.log.Debug("answer recorded",
		"user_id", in.UserID,
		"quiz_id", in.QuizID,
		"category", in.Category,
		"correct", correct,
		"sequence", rec.Sequence,
		"milestones", len(awarded),
	)

	if awarded == nil {
		awarded = []store.MilestoneRecord{}
	}
	return AnswerResult{
		AnswerID:   rec.ID,
		Correct:    correct,
		Stat:       stat,
		Totals:     totals,
		Milestones: awarded,
	}, nil
}

// Stats is a user's per-category statistics and overall totals.
type Stats struct {
	UserID     string               `json:"user_id"`
	Totals     store.UserTotals     `json:"totals"`
	Categories []store.CategoryStat `json:"categories"`
}

// Stats returns the user's statistics. A user with no answers yields
// store.ErrNotFound.
func (e *Engine) Stats(ctx context.Context, userID string) (Stats, error) {
	stats, err := e.repo.ListCategoryStats(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("list category stats: %w", err)
	}
	if len(stats) == 0 {
		return Stats{}, store.ErrNotFound
	}
	totals, err := e.repo.GetUserTotals(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("get user totals: %w", err)
	}
	return Stats{UserID: userID, Totals: totals, Categories: stats}, nil
}

// userState loads the optional profile and stats used by the recommender.
func (e *Engine) userState(ctx context.Context, userID string) (*store.Profile, []store.CategoryStat, error) {
	p, err := e.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get profile: %w", err)
	}
	stats, err := e.repo.ListCategoryStats(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list category stats: %w", err)
	}
	return p, stats, nil
}

// NextQuiz picks the category and difficulty for the user's next quiz.
func (e *Engine) NextQuiz(ctx context.Context, userID string) (recommend.Pick, error) {
	p, stats, err := e.userState(ctx, userID)
	if err != nil {
		return recommend.Pick{}, err
	}
	return e.recommender.Next(p, stats), nil
}

// Scores returns the category priority breakdown, highest first.
func (e *Engine) Scores(ctx context.Context, userID string) ([]recommend.Score, error) {
	p, stats, err := e.userState(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recommend.ScoreAll(p, stats, e.clock.Now()), nil
}

// Recommend returns weak areas, suggested focus and next steps.
func (e *Engine) Recommend(ctx context.Context, userID string) (recommend.Summary, error) {
	p, stats, err := e.userState(ctx, userID)
	if err != nil {
		return recommend.Summary{}, err
	}
	totals, err := e.repo.GetUserTotals(ctx, userID)
	if err != nil {
		return recommend.Summary{}, fmt.Errorf("get user totals: %w", err)
	}
	return recommend.Recommend(p, stats, totals), nil
}

// Profile returns the user's profile or store.ErrNotFound.
func (e *Engine) Profile(ctx context.Context, userID string) (store.Profile, error) {
	return e.profiles.Get(ctx, userID)
}

// UpdateProfile merges u into the user's profile.
func (e *Engine) UpdateProfile(ctx context.Context, userID string, u profile.Update) (store.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return store.Profile{}, &ValidationError{Field: "user_id", Reason: "must not be empty"}
	}
	return e.profiles.Upsert(ctx, userID, u)
}

// ApplyProfileCommand applies key=value command tokens to the user's
// profile. If any token is invalid nothing is written and the returned error
// is a *profile.ValidationError; unrecognized keys are reported but ignored.
func (e *Engine) ApplyProfileCommand(ctx context.Context, userID string, tokens []string) (store.Profile, command.Result, error) {
	u, res := command.ProfileCommand(tokens)
	if !res.OK() {
		verr := &profile.ValidationError{}
		for _, o := range res.Invalid() {
			verr.Fields = append(verr.Fields, profile.FieldError{Field: o.Key, Message: o.Reason})
		}
		return store.Profile{}, res, verr
	}
	if u.Empty() {
		return store.Profile{}, res, &profile.ValidationError{
			Fields: []profile.FieldError{{Field: "command", Message: "no recognized settings"}},
		}
	}
	p, err := e.UpdateProfile(ctx, userID, u)
	return p, res, err
}

// Milestones returns the user's awarded milestones, oldest first.
func (e *Engine) Milestones(ctx context.Context, userID string) ([]store.MilestoneRecord, error) {
	recs, err := e.milestones.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []store.MilestoneRecord{}
	}
	return recs, nil
}

// Aggregate recomputes and stores the team aggregate for key.
func (e *Engine) Aggregate(ctx context.Context, key store.AggregateKey) (store.TeamAggregate, error) {
	return e.aggregator.Aggregate(ctx, key)
}

// TeamAggregate returns a previously computed aggregate or store.ErrNotFound.
func (e *Engine) TeamAggregate(ctx context.Context, key store.AggregateKey) (store.TeamAggregate, error) {
	return e.aggregator.Get(ctx, key)
}

// IsValidation reports whether err is a client input error.
func IsValidation(err error) bool {
	var perr *profile.ValidationError
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, team.ErrInvalidKey) ||
		errors.Is(err, clock.ErrInvalidPeriod) ||
		errors.As(err, &perr)
}
