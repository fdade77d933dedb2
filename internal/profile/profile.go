// Package profile validates and merges developer profiles.
package profile

import (
	"fmt"
	"strings"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/clock"
	"github.com/skillpulse/skillpulse/internal/store"
)

const (
	// MaxFocusAreas caps the number of focus areas on a profile.
	MaxFocusAreas = 5
	// MaxGoalLength caps the free-text goal.
	MaxGoalLength = 500
)

// Update is a partial profile change. Nil fields keep their previous value.
type Update struct {
	Level             *category.Level            `json:"experience_level,omitempty"`
	YearsOfExperience *float64                   `json:"years_of_experience,omitempty"`
	FocusAreas        *[]category.Category       `json:"focus_areas,omitempty"`
	Goal              *string                    `json:"goal,omitempty"`
	SelfAssessment    *map[category.Category]int `json:"self_assessment,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u Update) Empty() bool {
	return u.Level == nil && u.YearsOfExperience == nil && u.FocusAreas == nil &&
		u.Goal == nil && u.SelfAssessment == nil
}

// FieldError is a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every invalid field of a profile. Err carries the
// underlying decode or schema error, if any.
type ValidationError struct {
	Fields []FieldError
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 && e.Err != nil {
		return "invalid profile: " + e.Err.Error()
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks every profile invariant and returns a *ValidationError
// listing all violations.
func Validate(p store.Profile) error {
	verr := &ValidationError{}

	if strings.TrimSpace(p.UserID) == "" {
		verr.add("user_id", "must not be empty")
	}
	if !p.Level.Valid() {
		verr.add("experience_level", "must be one of junior, mid, senior (got %q)", p.Level)
	}
	if p.YearsOfExperience < 0 {
		verr.add("years_of_experience", "must not be negative")
	}
	if len(p.FocusAreas) > MaxFocusAreas {
		verr.add("focus_areas", "at most %d allowed (got %d)", MaxFocusAreas, len(p.FocusAreas))
	}
	seen := make(map[category.Category]bool, len(p.FocusAreas))
	for _, c := range p.FocusAreas {
		if !c.Valid() {
			verr.add("focus_areas", "unknown category %q", c)
			continue
		}
		if seen[c] {
			verr.add("focus_areas", "duplicate category %q", c)
		}
		seen[c] = true
	}
	if len(p.Goal) > MaxGoalLength {
		verr.add("goal", "at most %d characters", MaxGoalLength)
	}
	for c, v := range p.SelfAssessment {
		if !c.Valid() {
			verr.add("self_assessment", "unknown category %q", c)
		}
		if v < 1 || v > 5 {
			verr.add("self_assessment", "%s must be between 1 and 5 (got %d)", c, v)
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Apply merges u into existing (nil for a new profile) and validates the
// result. The returned profile is a copy; existing is never modified.
func Apply(userID string, existing *store.Profile, u Update, now clock.Timestamp) (store.Profile, error) {
	var p store.Profile
	if existing != nil {
		p = *existing
		p.FocusAreas = append([]category.Category(nil), existing.FocusAreas...)
		p.SelfAssessment = copyAssessment(existing.SelfAssessment)
	} else {
		p = store.Profile{UserID: userID, Level: category.Mid, CreatedAt: now}
	}

	if u.Level != nil {
		p.Level = *u.Level
	}
	if u.YearsOfExperience != nil {
		p.YearsOfExperience = *u.YearsOfExperience
	}
	if u.FocusAreas != nil {
		p.FocusAreas = append([]category.Category(nil), (*u.FocusAreas)...)
	}
	if u.Goal != nil {
		p.Goal = strings.TrimSpace(*u.Goal)
	}
	if u.SelfAssessment != nil {
		if p.SelfAssessment == nil {
			p.SelfAssessment = make(map[category.Category]int, len(*u.SelfAssessment))
		}
		for c, v := range *u.SelfAssessment {
			p.SelfAssessment[c] = v
		}
	}
	p.UpdatedAt = now

	if err := Validate(p); err != nil {
		return store.Profile{}, err
	}
	return p, nil
}

func copyAssessment(m map[category.Category]int) map[category.Category]int {
	if m == nil {
		return nil
	}
	out := make(map[category.Category]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
