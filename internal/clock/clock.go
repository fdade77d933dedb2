package clock

import "time"

// Timestamp is a point in time as whole seconds plus a sub-second part,
// both relative to the Unix epoch.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

// FromTime converts a time.Time into a Timestamp.
func FromTime(t time.Time) Timestamp {
	return Timestamp{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}
}

// Time converts the timestamp back into a UTC time.Time.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
}

// IsZero reports whether the timestamp is unset.
func (ts Timestamp) IsZero() bool {
	return ts.Seconds == 0 && ts.Nanos == 0
}

// Before reports whether ts is strictly earlier than other.
func (ts Timestamp) Before(other Timestamp) bool {
	if ts.Seconds != other.Seconds {
		return ts.Seconds < other.Seconds
	}
	return ts.Nanos < other.Nanos
}

// Sub returns the duration ts - other.
func (ts Timestamp) Sub(other Timestamp) time.Duration {
	return ts.Time().Sub(other.Time())
}

// Clock supplies the current time.
type Clock interface {
	Now() Timestamp
}

// System reads the wall clock.
type System struct{}

func (System) Now() Timestamp { return FromTime(time.Now()) }

// Fixed always returns the same instant.
type Fixed Timestamp

func (f Fixed) Now() Timestamp { return Timestamp(f) }
