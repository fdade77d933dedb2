package recommend

import (
	"math/rand/v2"
	"sync"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/clock"
	"github.com/skillpulse/skillpulse/internal/store"
)

// Difficulty adjustment thresholds.
const (
	MinAdjustAttempts = 5
	EscalateRate      = 0.8
	DeescalateRate    = 0.4
)

// SelectCategory draws uniformly from the TopN scoring categories. Without a
// profile or any answered stats it draws uniformly from all categories.
func SelectCategory(p *store.Profile, stats []store.CategoryStat, rng *rand.Rand, now clock.Timestamp) category.Category {
	all := category.All()
	if p == nil || !hasData(stats) {
		return all[rng.IntN(len(all))]
	}

	scores := ScoreAll(p, stats, now)
	n := min(TopN, len(scores))
	return scores[rng.IntN(n)].Category
}

// SelectDifficulty starts from the profile level's baseline and steps it
// once the category has enough attempts. No profile always means easy.
func SelectDifficulty(p *store.Profile, stat *store.CategoryStat) category.Difficulty {
	if p == nil {
		return category.Easy
	}
	d := p.Level.BaselineDifficulty()
	if stat == nil || stat.TotalQuizzes < MinAdjustAttempts {
		return d
	}
	switch {
	case stat.CorrectRate >= EscalateRate:
		return d.Harder()
	case stat.CorrectRate <= DeescalateRate:
		return d.Easier()
	}
	return d
}

// Pick is the next quiz selection.
type Pick struct {
	Category   category.Category   `json:"category"`
	Difficulty category.Difficulty `json:"difficulty"`
}

// Recommender wraps the selection functions around a shared random source.
// It is safe for concurrent use.
type Recommender struct {
	mu    sync.Mutex
	rng   *rand.Rand
	clock clock.Clock
}

// New creates a recommender drawing from rng.
func New(rng *rand.Rand, clk clock.Clock) *Recommender {
	return &Recommender{rng: rng, clock: clk}
}

// NewSeeded creates a recommender with a deterministic source.
func NewSeeded(seed uint64, clk clock.Clock) *Recommender {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), clk)
}

// Next picks the category and difficulty of the user's next quiz.
func (r *Recommender) Next(p *store.Profile, stats []store.CategoryStat) Pick {
	r.mu.Lock()
	cat := SelectCategory(p, stats, r.rng, r.clock.Now())
	r.mu.Unlock()

	return Pick{
		Category:   cat,
		Difficulty: SelectDifficulty(p, indexStats(stats)[cat]),
	}
}
