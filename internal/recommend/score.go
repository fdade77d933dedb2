// Package recommend picks the next quiz category and difficulty for a user
// and summarizes where they should focus.
package recommend

import (
	"sort"
	"time"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/clock"
	"github.com/skillpulse/skillpulse/internal/store"
)

// Scoring weights and bonuses.
const (
	WeaknessWeight  = 0.4
	FocusWeight     = 0.3
	ReviewWeight    = 0.2
	GrowthWeight    = 0.1
	NeutralWeakness = WeaknessWeight * 0.5
	NeverReviewed   = 0.15

	// MinWeaknessAttempts is the attempt count needed before the correct
	// rate is trusted.
	MinWeaknessAttempts = 3
	// TopN is how many of the best-scoring categories the pick is drawn from.
	TopN = 3
)

// Score is one category's priority with its component breakdown.
type Score struct {
	Category category.Category `json:"category"`
	Total    float64           `json:"total"`
	Weakness float64           `json:"weakness"`
	Focus    float64           `json:"focus"`
	Review   float64           `json:"review"`
	Growth   float64           `json:"growth"`
}

// ScoreCategory scores cat for a user. stat may be nil when the category
// has never been answered; profile may be nil.
func ScoreCategory(p *store.Profile, cat category.Category, stat *store.CategoryStat, now clock.Timestamp) Score {
	s := Score{Category: cat}
	attempts := 0
	if stat != nil {
		attempts = stat.TotalQuizzes
	}

	if attempts >= MinWeaknessAttempts {
		s.Weakness = WeaknessWeight * (1 - stat.CorrectRate)
	} else {
		s.Weakness = NeutralWeakness
	}

	if p.HasFocus(cat) {
		s.Focus = FocusWeight
	}

	if attempts == 0 {
		s.Review = NeverReviewed
	} else {
		days := int(now.Sub(stat.LastAnsweredAt) / (24 * time.Hour))
		switch {
		case days >= 7:
			s.Review = ReviewWeight
		case days >= 3:
			s.Review = ReviewWeight / 2
		}
	}

	if attempts > 0 && stat.AverageDifficulty < 2 {
		s.Growth = GrowthWeight
	}

	s.Total = s.Weakness + s.Focus + s.Review + s.Growth
	return s
}

// ScoreAll scores every category, highest first. Ties keep the fixed
// category order.
func ScoreAll(p *store.Profile, stats []store.CategoryStat, now clock.Timestamp) []Score {
	byCat := indexStats(stats)
	scores := make([]Score, 0, len(category.All()))
	for _, c := range category.All() {
		scores = append(scores, ScoreCategory(p, c, byCat[c], now))
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Total > scores[j].Total })
	return scores
}

func indexStats(stats []store.CategoryStat) map[category.Category]*store.CategoryStat {
	m := make(map[category.Category]*store.CategoryStat, len(stats))
	for i := range stats {
		m[stats[i].Category] = &stats[i]
	}
	return m
}

func hasData(stats []store.CategoryStat) bool {
	for _, s := range stats {
		if s.TotalQuizzes > 0 {
			return true
		}
	}
	return false
}
