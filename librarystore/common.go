package librarystore

import (
	"errors"
)

var (
	// ErrConcurrencyConflict is returned when a conditional write affected no rows
	// because the stored record changed since it was read.
	ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

	// ErrDuplicateRecord is returned when an insert violates a unique constraint.
	ErrDuplicateRecord = errors.New("duplicate record")

	// ErrRecordNotFound is returned by single-record lookups that found nothing.
	ErrRecordNotFound = errors.New("record not found")

	ErrNilDatabaseConnection     = errors.New("database connection must not be nil")
	ErrUnsupportedDialect        = errors.New("unsupported sql dialect")
	ErrBuildingQueryFailed       = errors.New("building the sql query failed")
	ErrQueryingFailed            = errors.New("querying the database failed")
	ErrExecFailed                = errors.New("executing the sql statement failed")
	ErrScanningDBRowFailed       = errors.New("scanning the database row failed")
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
)
