package storewrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-backend-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
)

// Adapter type constants
const (
	typeSQLite  = "sqlite3"
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"

	envAdapterType     = "ADAPTER_TYPE"
	envTestDatabaseURL = "TEST_DATABASE_URL"

	truncateAllTables = "TRUNCATE TABLE borrow_records, books, users, counters"
)

// Wrapper abstracts over the different connection types a LibraryStore can run on.
type Wrapper interface {
	GetStore() sqlengine.LibraryStore
	Close()
}

// SQLiteWrapper wraps a file based SQLite database.
type SQLiteWrapper struct {
	db    *sql.DB
	store sqlengine.LibraryStore
}

func (w *SQLiteWrapper) GetStore() sqlengine.LibraryStore {
	return w.store
}

func (w *SQLiteWrapper) Close() {
	_ = w.db.Close()
}

// PGXPoolWrapper wraps pgxpool based testing.
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store sqlengine.LibraryStore
}

func (w *PGXPoolWrapper) GetStore() sqlengine.LibraryStore {
	return w.store
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB based testing against PostgreSQL.
type SQLDBWrapper struct {
	db    *sql.DB
	store sqlengine.LibraryStore
}

func (w *SQLDBWrapper) GetStore() sqlengine.LibraryStore {
	return w.store
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close()
}

// SQLXWrapper wraps sqlx.DB based testing against PostgreSQL.
type SQLXWrapper struct {
	db    *sqlx.DB
	store sqlengine.LibraryStore
}

func (w *SQLXWrapper) GetStore() sqlengine.LibraryStore {
	return w.store
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close()
}

// CreateWrapperWithTestConfig creates a wrapper with an empty schema for the adapter selected by ADAPTER_TYPE.
// The wrapper is closed automatically when the test finishes.
func CreateWrapperWithTestConfig(t testing.TB, options ...sqlengine.Option) Wrapper {
	t.Helper()

	wrapper := createWrapper(t, options)
	t.Cleanup(wrapper.Close)

	require.NoError(t, wrapper.GetStore().CreateSchema(context.Background()), "error creating schema in test setup")

	return wrapper
}

func createWrapper(t testing.TB, options []sqlengine.Option) Wrapper {
	t.Helper()

	ctx := context.Background()
	adapterType := strings.ToLower(os.Getenv(envAdapterType))

	switch adapterType {
	case typeSQLite, "":
		db, err := config.OpenSQLite(ctx, filepath.Join(t.TempDir(), "library.db"))
		require.NoError(t, err, "error opening sqlite in test setup")

		store, err := sqlengine.NewLibraryStoreFromSQLDB(db, withDialect(sqlengine.DialectSQLite3, options)...)
		require.NoError(t, err, "error creating library store")

		return &SQLiteWrapper{db: db, store: store}

	case typePGXPool:
		pool, err := config.OpenPGXPool(ctx, testDatabaseURL(t))
		require.NoError(t, err, "error connecting to DB pool in test setup")

		store, err := sqlengine.NewLibraryStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating library store")

		require.NoError(t, store.CreateSchema(ctx))
		_, err = pool.Exec(ctx, truncateAllTables)
		require.NoError(t, err, "error truncating tables in test setup")

		return &PGXPoolWrapper{pool: pool, store: store}

	case typeSQLDB:
		db, err := config.OpenPostgresSQLDB(ctx, testDatabaseURL(t))
		require.NoError(t, err, "error connecting to DB in test setup")

		store, err := sqlengine.NewLibraryStoreFromSQLDB(db, withDialect(sqlengine.DialectPostgres, options)...)
		require.NoError(t, err, "error creating library store")

		require.NoError(t, store.CreateSchema(ctx))
		_, err = db.ExecContext(ctx, truncateAllTables)
		require.NoError(t, err, "error truncating tables in test setup")

		return &SQLDBWrapper{db: db, store: store}

	case typeSQLXDB:
		db, err := config.OpenPostgresSQLX(ctx, testDatabaseURL(t))
		require.NoError(t, err, "error connecting to DB in test setup")

		store, err := sqlengine.NewLibraryStoreFromSQLX(db, withDialect(sqlengine.DialectPostgres, options)...)
		require.NoError(t, err, "error creating library store")

		require.NoError(t, store.CreateSchema(ctx))
		_, err = db.ExecContext(ctx, truncateAllTables)
		require.NoError(t, err, "error truncating tables in test setup")

		return &SQLXWrapper{db: db, store: store}

	default:
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterType))
	}
}

func withDialect(dialect string, options []sqlengine.Option) []sqlengine.Option {
	return append([]sqlengine.Option{sqlengine.WithDialect(dialect)}, options...)
}

func testDatabaseURL(t testing.TB) string {
	t.Helper()

	dsn := os.Getenv(envTestDatabaseURL)
	if dsn == "" {
		t.Skipf("%s is not set", envTestDatabaseURL)
	}

	return dsn
}
