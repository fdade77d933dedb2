// Package command turns already-tokenized comment-command arguments into
// typed values, reporting per-token whether it was applied, invalid or
// unrecognized.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/profile"
)

// Status classifies one command argument.
type Status string

const (
	Applied      Status = "applied"
	Invalid      Status = "invalid"
	Unrecognized Status = "unrecognized"
)

// Outcome is the result for a single key=value token.
type Outcome struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Result collects outcomes in token order.
type Result struct {
	Outcomes []Outcome `json:"outcomes"`
}

// Applied returns the outcomes that were applied.
func (r Result) Applied() []Outcome { return r.filter(Applied) }

// Invalid returns the outcomes with a recognized key but a bad value.
func (r Result) Invalid() []Outcome { return r.filter(Invalid) }

// Unrecognized returns the outcomes with an unknown key.
func (r Result) Unrecognized() []Outcome { return r.filter(Unrecognized) }

// OK reports whether no token was invalid.
func (r Result) OK() bool { return len(r.Invalid()) == 0 }

func (r Result) filter(s Status) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == s {
			out = append(out, o)
		}
	}
	return out
}

func (r *Result) add(key, value string, s Status, reason string) {
	r.Outcomes = append(r.Outcomes, Outcome{Key: key, Value: value, Status: s, Reason: reason})
}

// Profile command keys.
const (
	KeyLevel      = "level"
	KeyYears      = "years"
	KeyFocus      = "focus"
	KeyGoal       = "goal"
	KeyAssessment = "assess"
)

// ProfileCommand converts key=value tokens into a profile update. Invalid
// values are reported and left out of the update; the caller decides
// whether to apply a partially valid command.
//
// Recognized keys: level=junior|mid|senior, years=<n>, focus=a,b,c,
// goal=<text>, assess=<category>:<1-5>[,...].
func ProfileCommand(tokens []string) (profile.Update, Result) {
	var (
		u   profile.Update
		res Result
	)

	for _, tok := range tokens {
		key, value, found := strings.Cut(tok, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if !found {
			res.add(key, "", Unrecognized, "expected key=value")
			continue
		}

		switch key {
		case KeyLevel:
			l, err := category.ParseLevel(value)
			if err != nil {
				res.add(key, value, Invalid, err.Error())
				continue
			}
			u.Level = &l
		case KeyYears:
			y, err := strconv.ParseFloat(value, 64)
			if err != nil || y < 0 {
				res.add(key, value, Invalid, "must be a non-negative number")
				continue
			}
			u.YearsOfExperience = &y
		case KeyFocus:
			cats, err := parseFocus(value)
			if err != nil {
				res.add(key, value, Invalid, err.Error())
				continue
			}
			u.FocusAreas = &cats
		case KeyGoal:
			if len(value) > profile.MaxGoalLength {
				res.add(key, value, Invalid, fmt.Sprintf("at most %d characters", profile.MaxGoalLength))
				continue
			}
			g := value
			u.Goal = &g
		case KeyAssessment:
			m, err := parseAssessment(value)
			if err != nil {
				res.add(key, value, Invalid, err.Error())
				continue
			}
			u.SelfAssessment = &m
		default:
			res.add(key, value, Unrecognized, "")
			continue
		}
		res.add(key, value, Applied, "")
	}
	return u, res
}

func parseFocus(value string) ([]category.Category, error) {
	var cats []category.Category
	seen := make(map[category.Category]bool)
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := category.Parse(part)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			return nil, fmt.Errorf("duplicate category %q", c)
		}
		seen[c] = true
		cats = append(cats, c)
	}
	if len(cats) > profile.MaxFocusAreas {
		return nil, fmt.Errorf("at most %d focus areas", profile.MaxFocusAreas)
	}
	return cats, nil
}

func parseAssessment(value string) (map[category.Category]int, error) {
	m := make(map[category.Category]int)
	for _, part := range strings.Split(value, ",") {
		name, score, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("expected category:score, got %q", part)
		}
		c, err := category.Parse(name)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(score))
		if err != nil || n < 1 || n > 5 {
			return nil, fmt.Errorf("score for %s must be 1-5", c)
		}
		m[c] = n
	}
	return m, nil
}

// AnswerIndex converts a 1-based answer token ("1".."4") to a 0-based index.
func AnswerIndex(token string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil || n < 1 || n > 4 {
		return 0, fmt.Errorf("answer must be 1-4, got %q", token)
	}
	return n - 1, nil
}
