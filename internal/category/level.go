package category

import (
	"fmt"
	"strings"
)

// Level is a developer's self-declared experience level.
type Level string

const (
	Junior Level = "junior"
	Mid    Level = "mid"
	Senior Level = "senior"
)

// AllLevels returns the levels in ascending order.
func AllLevels() []Level {
	return []Level{Junior, Mid, Senior}
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case Junior, Mid, Senior:
		return true
	}
	return false
}

// BaselineDifficulty is the starting difficulty for a level.
func (l Level) BaselineDifficulty() Difficulty {
	switch l {
	case Junior:
		return Easy
	case Senior:
		return Hard
	default:
		return Medium
	}
}

// ParseLevel resolves an experience level token.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown experience level %q", s)
	}
	return l, nil
}
