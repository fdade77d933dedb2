package category

import (
	"fmt"
	"strings"
)

// Difficulty is the difficulty of a single quiz.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties returns the difficulties from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Value maps the difficulty onto the 1-3 scale used for averaging.
// Unknown difficulties count as medium.
func (d Difficulty) Value() float64 {
	switch d {
	case Easy:
		return 1
	case Hard:
		return 3
	default:
		return 2
	}
}

// Harder returns the next difficulty up, clamped at hard.
func (d Difficulty) Harder() Difficulty {
	switch d {
	case Easy:
		return Medium
	default:
		return Hard
	}
}

// Easier returns the next difficulty down, clamped at easy.
func (d Difficulty) Easier() Difficulty {
	switch d {
	case Hard:
		return Medium
	default:
		return Easy
	}
}

// ParseDifficulty resolves a difficulty token.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d.Valid() {
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}
