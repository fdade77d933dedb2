// Package keylock serializes read-modify-write sequences on a single logical
// key (for example one user's statistics in one category).
package keylock

import (
	"context"
	"strings"
)

// Locker acquires exclusive locks on string keys. The returned unlock func
// must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// StatKey is the lock key guarding a (user, category) statistic.
func StatKey(userID, category string) string {
	return join("stat", userID, category)
}

// MilestoneKey is the lock key guarding award of one milestone scope.
func MilestoneKey(userID, milestoneType, scope string) string {
	return join("milestone", userID, milestoneType, scope)
}

// ProfileKey is the lock key guarding a user's profile merge.
func ProfileKey(userID string) string {
	return join("profile", userID)
}

func join(parts ...string) string {
	return strings.Join(parts, ":")
}
