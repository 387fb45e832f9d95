package sqlengine

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/AntonStoeckl/library-backend-go/librarystore"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine/internal/adapters"
)

const operationNextSequenceValue = "next_sequence_value"

// ErrInvalidSequenceName is returned for sequence names that are not lower case identifiers.
var ErrInvalidSequenceName = errors.New("sequence name must match [a-z_]+")

var sequenceNamePattern = regexp.MustCompile(`^[a-z_]+$`)

// NextSequenceValue atomically increments the named sequence and returns the new value.
// A sequence that does not exist yet is created and returns 1.
//
// The increment and the read happen in one upsert statement, so concurrent callers
// never observe the same value.
func (s LibraryStore) NextSequenceValue(ctx context.Context, name string) (int64, error) {
	if !sequenceNamePattern.MatchString(name) {
		return 0, ErrInvalidSequenceName
	}

	// writes must never be routed to a replica
	ctx = librarystore.WithStrongConsistency(ctx)

	// goqu cannot render RETURNING for sqlite3, the upsert is identical in both dialects
	sqlQuery := fmt.Sprintf(
		`INSERT INTO %[1]s (%[2]s, %[3]s) VALUES ('%[4]s', 1) `+
			`ON CONFLICT (%[2]s) DO UPDATE SET %[3]s = %[1]s.%[3]s + 1 `+
			`RETURNING %[3]s`,
		tableCounters, colName, colSequenceValue, name,
	)

	var value int64
	found := false

	err := s.runQuery(ctx, operationNextSequenceValue, sqlQuery, func(rows adapters.DBRows) error {
		found = true
		return rows.Scan(&value)
	})
	if err != nil {
		return 0, err
	}

	if !found {
		return 0, errors.Join(librarystore.ErrQueryingFailed, librarystore.ErrRecordNotFound)
	}

	s.logOperation(ctx, operationNextSequenceValue, logAttrSequence, name)

	return value, nil
}
