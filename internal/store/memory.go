package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/clock"
)

type statKey struct {
	user     string
	category category.Category
}

type milestoneKey struct {
	user  string
	mtype string
	scope string
}

// MemoryRepo is an in-process StatsRepo. Each method is atomic on its own;
// like the SQLite repo it offers no cross-call transactions.
type MemoryRepo struct {
	mu         sync.Mutex
	stats      map[statKey]CategoryStat
	answers    []AnswerRecord
	totals     map[string]UserTotals
	milestones []MilestoneRecord
	awarded    map[milestoneKey]bool
	profiles   map[string]Profile
	aggregates map[AggregateKey]TeamAggregate
	seq        int64
}

var _ StatsRepo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty in-memory repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		stats:      make(map[statKey]CategoryStat),
		totals:     make(map[string]UserTotals),
		awarded:    make(map[milestoneKey]bool),
		profiles:   make(map[string]Profile),
		aggregates: make(map[AggregateKey]TeamAggregate),
	}
}

func (m *MemoryRepo) GetCategoryStat(_ context.Context, userID string, cat category.Category) (*CategoryStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stats[statKey{userID, cat}]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryRepo) PutCategoryStat(_ context.Context, stat CategoryStat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[statKey{stat.UserID, stat.Category}] = stat
	return nil
}

func (m *MemoryRepo) ListCategoryStats(_ context.Context, userID string) ([]CategoryStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []CategoryStat
	for k, s := range m.stats {
		if k.user == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (m *MemoryRepo) AppendAnswer(_ context.Context, rec *AnswerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	rec.Sequence = m.seq
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m.answers = append(m.answers, *rec)
	return nil
}

func (m *MemoryRepo) RecordAnswer(_ context.Context, rec *AnswerRecord, stat CategoryStat) (UserTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	rec.Sequence = m.seq
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m.answers = append(m.answers, *rec)

	t := m.totals[rec.UserID]
	t.UserID = rec.UserID
	t.TotalAnswers++
	if rec.Correct {
		t.TotalCorrect++
	}
	m.totals[rec.UserID] = t

	m.stats[statKey{stat.UserID, stat.Category}] = stat
	return t, nil
}

func (m *MemoryRepo) ListAnswersInPeriod(_ context.Context, period clock.Period, cat category.Category) ([]AnswerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []AnswerRecord
	for _, a := range m.answers {
		if !period.Contains(a.AnsweredAt) {
			continue
		}
		if cat != "" && a.Category != cat {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *MemoryRepo) IncrementUserTotals(_ context.Context, userID string, correct bool) (UserTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.totals[userID]
	t.UserID = userID
	t.TotalAnswers++
	if correct {
		t.TotalCorrect++
	}
	m.totals[userID] = t
	return t, nil
}

func (m *MemoryRepo) GetUserTotals(_ context.Context, userID string) (UserTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.totals[userID]
	t.UserID = userID
	return t, nil
}

func (m *MemoryRepo) ListMilestones(_ context.Context, userID, milestoneType string, cat category.Category) ([]MilestoneRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []MilestoneRecord
	for _, ms := range m.milestones {
		if ms.UserID != userID || ms.Type != milestoneType {
			continue
		}
		if cat != "" && ms.Category != cat {
			continue
		}
		out = append(out, ms)
	}
	return out, nil
}

func (m *MemoryRepo) ListMilestonesByUser(_ context.Context, userID string) ([]MilestoneRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []MilestoneRecord
	for _, ms := range m.milestones {
		if ms.UserID == userID {
			out = append(out, ms)
		}
	}
	return out, nil
}

func (m *MemoryRepo) InsertMilestone(_ context.Context, rec MilestoneRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := milestoneKey{rec.UserID, rec.Type, rec.Scope}
	if m.awarded[key] {
		return false, nil
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m.awarded[key] = true
	m.milestones = append(m.milestones, rec)
	return true, nil
}

func (m *MemoryRepo) GetProfile(_ context.Context, userID string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MemoryRepo) PutProfile(_ context.Context, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UserID] = p
	return nil
}

func (m *MemoryRepo) ListProfilesByLevel(_ context.Context, level category.Level) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, p := range m.profiles {
		if p.Level == level {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryRepo) PutTeamAggregate(_ context.Context, agg TeamAggregate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggregates[agg.Key] = agg
	return nil
}

func (m *MemoryRepo) GetTeamAggregate(_ context.Context, key AggregateKey) (*TeamAggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	agg, ok := m.aggregates[key]
	if !ok {
		return nil, nil
	}
	return &agg, nil
}
