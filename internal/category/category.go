package category

import (
	"fmt"
	"strings"
)

// Category is a quiz subject tag.
type Category string

const (
	BugFix      Category = "bug-fix"
	Performance Category = "performance"
	Refactoring Category = "refactoring"
	Security    Category = "security"
	Logic       Category = "logic"
)

// All returns every category in display order.
func All() []Category {
	return []Category{
		BugFix,
		Performance,
		Refactoring,
		Security,
		Logic,
	}
}

// DisplayName returns a human-readable name for a category.
func (c Category) DisplayName() string {
	switch c {
	case BugFix:
		return "Bug Fix"
	case Performance:
		return "Performance"
	case Refactoring:
		return "Refactoring"
	case Security:
		return "Security"
	case Logic:
		return "Logic"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range All() {
		if c == known {
			return true
		}
	}
	return false
}

// Parse resolves a category tag, ignoring case and surrounding space.
func Parse(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
