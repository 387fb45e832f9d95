package core

import (
	"time"
)

// Timestamp represents a point in time as stored by the library, in UTC with microsecond precision.
type Timestamp = time.Time

// ToTimestamp converts a time to a Timestamp with UTC normalization and microsecond precision.
// Microseconds are the precision of PostgreSQL timestamps, so values survive a round trip unchanged.
func ToTimestamp(t time.Time) Timestamp {
	return t.UTC().Truncate(time.Microsecond)
}
