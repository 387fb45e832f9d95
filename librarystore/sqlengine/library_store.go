package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-backend-go/librarystore"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine/internal/adapters"
)

const (
	// DialectPostgres builds statements for PostgreSQL.
	DialectPostgres = "postgres"

	// DialectSQLite3 builds statements for SQLite.
	DialectSQLite3 = "sqlite3"

	// SequenceBookID is the name of the sequence that hands out book ids.
	SequenceBookID = "bookid"
)

const (
	tableUsers    = "users"
	tableBooks    = "books"
	tableBorrows  = "borrow_records"
	tableCounters = "counters"

	colID              = "id"
	colName            = "name"
	colEmail           = "email"
	colPasswordHash    = "password_hash"
	colRole            = "role"
	colTitle           = "title"
	colAuthor          = "author"
	colTotalCopies     = "total_copies"
	colAvailableCopies = "available_copies"
	colBorrowedCopies  = "borrowed_copies"
	colAvailable       = "available"
	colDiscontinued    = "discontinued"
	colVersion         = "version"
	colUserID          = "user_id"
	colBookID          = "book_id"
	colBorrowedAt      = "borrowed_at"
	colReturnedAt      = "returned_at"
	colSequenceValue   = "sequence_value"

	roleAdmin = "admin"
)

const (
	logMsgBuildQueryFailed    = "failed to build sql statement"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database statement execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "librarystore operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrOperation          = "operation"
	logAttrDurationMS         = "duration_ms"
	logAttrRowsAffected       = "rows_affected"
	logAttrBookID             = "book_id"
	logAttrUserID             = "user_id"
	logAttrBorrowID           = "borrow_id"
	logAttrExpectedVersion    = "expected_version"
	logAttrSequence           = "sequence"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
)

// LibraryStore persists the records of the library backend in a SQL database.
type LibraryStore struct {
	db               adapters.DBAdapter
	dialect          string
	logger           Logger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	contextualLogger ContextualLogger
}

// NewLibraryStoreFromPGXPool creates a new LibraryStore using a pgx Pool with optional configuration.
func NewLibraryStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (LibraryStore, error) {
	if db == nil {
		return LibraryStore{}, librarystore.ErrNilDatabaseConnection
	}

	return newLibraryStore(adapters.NewPGXAdapter(db), options...)
}

// NewLibraryStoreFromPGXPoolWithReplica creates a new LibraryStore using a primary and a replica pgx Pool.
// Reads run against the replica only when the context carries librarystore.EventualConsistency.
func NewLibraryStoreFromPGXPoolWithReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (LibraryStore, error) {
	if primary == nil || replica == nil {
		return LibraryStore{}, librarystore.ErrNilDatabaseConnection
	}

	return newLibraryStore(adapters.NewPGXAdapterWithReplica(primary, replica), options...)
}

// NewLibraryStoreFromSQLDB creates a new LibraryStore using a sql.DB with optional configuration.
// The dialect defaults to PostgreSQL, use WithDialect(DialectSQLite3) for SQLite connections.
func NewLibraryStoreFromSQLDB(db *sql.DB, options ...Option) (LibraryStore, error) {
	if db == nil {
		return LibraryStore{}, librarystore.ErrNilDatabaseConnection
	}

	return newLibraryStore(adapters.NewSQLAdapter(db), options...)
}

// NewLibraryStoreFromSQLDBWithReplica creates a new LibraryStore using a primary and a replica sql.DB.
func NewLibraryStoreFromSQLDBWithReplica(primary *sql.DB, replica *sql.DB, options ...Option) (LibraryStore, error) {
	if primary == nil || replica == nil {
		return LibraryStore{}, librarystore.ErrNilDatabaseConnection
	}

	return newLibraryStore(adapters.NewSQLAdapterWithReplica(primary, replica), options...)
}

// NewLibraryStoreFromSQLX creates a new LibraryStore using a sqlx.DB with optional configuration.
func NewLibraryStoreFromSQLX(db *sqlx.DB, options ...Option) (LibraryStore, error) {
	if db == nil {
		return LibraryStore{}, librarystore.ErrNilDatabaseConnection
	}

	return newLibraryStore(adapters.NewSQLXAdapter(db), options...)
}

// NewLibraryStoreFromSQLXWithReplica creates a new LibraryStore using a primary and a replica sqlx.DB.
func NewLibraryStoreFromSQLXWithReplica(primary *sqlx.DB, replica *sqlx.DB, options ...Option) (LibraryStore, error) {
	if primary == nil || replica == nil {
		return LibraryStore{}, librarystore.ErrNilDatabaseConnection
	}

	return newLibraryStore(adapters.NewSQLXAdapterWithReplica(primary, replica), options...)
}

func newLibraryStore(db adapters.DBAdapter, options ...Option) (LibraryStore, error) {
	s := LibraryStore{
		db:      db,
		dialect: DialectPostgres,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return LibraryStore{}, err
		}
	}

	return s, nil
}

// Dialect returns the SQL dialect the store builds statements for.
func (s LibraryStore) Dialect() string {
	return s.dialect
}

// sqliteTimestampFormat has a fixed width, so SQLite compares and sorts the stored text chronologically.
const sqliteTimestampFormat = "2006-01-02T15:04:05.000000Z"

// timestamp renders a time for the current dialect. PostgreSQL gets a native timestamptz value.
func (s LibraryStore) timestamp(t time.Time) any {
	if s.dialect == DialectSQLite3 {
		return t.UTC().Format(sqliteTimestampFormat)
	}

	return t.UTC()
}

func (s LibraryStore) builder() goqu.DialectWrapper {
	return goqu.Dialect(s.dialect)
}

// toSQL finalizes a goqu statement into interpolated SQL.
func (s LibraryStore) toSQL(ctx context.Context, operation string, statement interface {
	ToSQL() (string, []any, error)
}) (sqlQueryString, error) {
	sqlQuery, _, toSQLErr := statement.ToSQL()
	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, toSQLErr, logAttrOperation, operation)
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// runQuery executes a read statement and hands every row to scan.
func (s LibraryStore) runQuery(
	ctx context.Context,
	operation string,
	sqlQuery sqlQueryString,
	scan func(rows adapters.DBRows) error,
) error {
	observer, ctx := s.startObservation(ctx, operation)

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, operation, time.Since(start))

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrOperation, operation, logAttrQuery, sqlQuery)
		observer.finishError(errorTypeDatabaseQuery)

		if isUniqueViolation(queryErr) {
			return errors.Join(librarystore.ErrDuplicateRecord, queryErr)
		}

		return errors.Join(librarystore.ErrQueryingFailed, queryErr)
	}
	defer s.closeRows(ctx, rows)

	rowCount := int64(0)
	for rows.Next() {
		if scanErr := scan(rows); scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr, logAttrOperation, operation)
			observer.finishError(errorTypeRowScan)

			return errors.Join(librarystore.ErrScanningDBRowFailed, scanErr)
		}

		rowCount++
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, rowsErr, logAttrOperation, operation, logAttrQuery, sqlQuery)
		observer.finishError(errorTypeDatabaseQuery)

		return errors.Join(librarystore.ErrQueryingFailed, rowsErr)
	}

	observer.finishSuccess(rowCount)

	return nil
}

// runExec executes a write statement and returns the number of affected rows.
func (s LibraryStore) runExec(ctx context.Context, operation string, sqlQuery sqlQueryString) (rowsAffectedInt64, error) {
	observer, ctx := s.startObservation(ctx, operation)

	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, operation, time.Since(start))

	if execErr != nil {
		if isUniqueViolation(execErr) {
			observer.finishError(errorTypeDuplicateRecord)
			return 0, errors.Join(librarystore.ErrDuplicateRecord, execErr)
		}

		if isCheckViolation(execErr) {
			observer.finishError(errorTypeCheckViolation)
			return 0, errors.Join(librarystore.ErrCopyCountersOutOfBalance, execErr)
		}

		s.logError(ctx, logMsgDBExecFailed, execErr, logAttrOperation, operation, logAttrQuery, sqlQuery)
		observer.finishError(errorTypeDatabaseExec)

		return 0, errors.Join(librarystore.ErrExecFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr, logAttrOperation, operation)
		observer.finishError(errorTypeRowsAffected)

		return 0, errors.Join(librarystore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	observer.finishSuccess(rowsAffected)

	return rowsAffected, nil
}

// conditionalWriteApplied turns a conditional write that matched no row into ErrConcurrencyConflict.
func (s LibraryStore) conditionalWriteApplied(ctx context.Context, operation string, rowsAffected int64, args ...any) error {
	if rowsAffected > 0 {
		return nil
	}

	s.recordConcurrencyConflict(ctx, operation)

	allArgs := []any{logAttrOperation, operation, logAttrRowsAffected, rowsAffected}
	allArgs = append(allArgs, args...)
	s.logOperation(ctx, logMsgConcurrencyConflict, allArgs...)

	return librarystore.ErrConcurrencyConflict
}

// closeRows safely closes database rows and logs any errors.
func (s LibraryStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}
