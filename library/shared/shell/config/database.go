package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // postgres driver for database/sql and sqlx
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver for database/sql

	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
)

const (
	pgMaxConns          = 20
	pgMinConns          = 2
	pgMaxConnLifetime   = 30 * time.Minute
	pgMaxConnIdleTime   = 5 * time.Minute
	pgHealthCheckPeriod = time.Minute
	sqliteBusyTimeoutMS = 5000
)

// PGXPoolConfig builds the pgxpool configuration for the given DSN.
func PGXPoolConfig(dsn string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}

	poolConfig.MaxConns = pgMaxConns
	poolConfig.MinConns = pgMinConns
	poolConfig.MaxConnLifetime = pgMaxConnLifetime
	poolConfig.MaxConnIdleTime = pgMaxConnIdleTime
	poolConfig.HealthCheckPeriod = pgHealthCheckPeriod

	return poolConfig, nil
}

// OpenPGXPool connects a pgxpool and verifies the connection.
func OpenPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := PGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating pgx pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return pool, nil
}

// OpenPostgresSQLDB opens a database/sql connection pool using lib/pq.
func OpenPostgresSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}

	db.SetMaxOpenConns(pgMaxConns)
	db.SetMaxIdleConns(pgMinConns)
	db.SetConnMaxLifetime(pgMaxConnLifetime)
	db.SetConnMaxIdleTime(pgMaxConnIdleTime)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return db, nil
}

// OpenPostgresSQLX opens a sqlx connection pool using lib/pq.
func OpenPostgresSQLX(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := OpenPostgresSQLDB(ctx, dsn)
	if err != nil {
		return nil, err
	}

	return sqlx.NewDb(db, "postgres"), nil
}

// SQLiteDSN builds the DSN of a file based SQLite database with WAL journaling, a busy timeout and foreign keys.
func SQLiteDSN(path string) string {
	query := url.Values{}
	query.Set("_journal_mode", "WAL")
	query.Set("_busy_timeout", fmt.Sprint(sqliteBusyTimeoutMS))
	query.Set("_foreign_keys", "on")
	query.Set("_txlock", "immediate")

	return "file:" + path + "?" + query.Encode()
}

// OpenSQLite opens the SQLite database at path.
// A single connection serializes all writes, the busy timeout covers other processes on the same file.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	return db, nil
}

// Closer releases the connections behind a store.
type Closer func() error

// OpenStore connects to the configured database and builds the LibraryStore on top of it.
// When DATABASE_REPLICA_URL is set for a postgres driver, reads with eventual consistency go to the replica.
func OpenStore(ctx context.Context, cfg Config, options ...sqlengine.Option) (sqlengine.LibraryStore, Closer, error) {
	switch cfg.DatabaseDriver {
	case DriverPGX:
		return openPGXStore(ctx, cfg, options)
	case DriverPostgres:
		return openSQLDBStore(ctx, cfg, options)
	case DriverSQLX:
		return openSQLXStore(ctx, cfg, options)
	case DriverSQLite3:
		db, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return sqlengine.LibraryStore{}, nil, err
		}

		options = append([]sqlengine.Option{sqlengine.WithDialect(sqlengine.DialectSQLite3)}, options...)

		store, err := sqlengine.NewLibraryStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return sqlengine.LibraryStore{}, nil, err
		}

		return store, db.Close, nil
	default:
		return sqlengine.LibraryStore{}, nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DatabaseDriver)
	}
}

func openPGXStore(ctx context.Context, cfg Config, options []sqlengine.Option) (sqlengine.LibraryStore, Closer, error) {
	primary, err := OpenPGXPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return sqlengine.LibraryStore{}, nil, err
	}

	if cfg.DatabaseReplicaURL == "" {
		store, storeErr := sqlengine.NewLibraryStoreFromPGXPool(primary, options...)
		if storeErr != nil {
			primary.Close()
			return sqlengine.LibraryStore{}, nil, storeErr
		}

		return store, func() error { primary.Close(); return nil }, nil
	}

	replica, err := OpenPGXPool(ctx, cfg.DatabaseReplicaURL)
	if err != nil {
		primary.Close()
		return sqlengine.LibraryStore{}, nil, err
	}

	closeAll := func() error {
		replica.Close()
		primary.Close()

		return nil
	}

	store, err := sqlengine.NewLibraryStoreFromPGXPoolWithReplica(primary, replica, options...)
	if err != nil {
		_ = closeAll()
		return sqlengine.LibraryStore{}, nil, err
	}

	return store, closeAll, nil
}

func openSQLDBStore(ctx context.Context, cfg Config, options []sqlengine.Option) (sqlengine.LibraryStore, Closer, error) {
	options = append([]sqlengine.Option{sqlengine.WithDialect(sqlengine.DialectPostgres)}, options...)

	primary, err := OpenPostgresSQLDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return sqlengine.LibraryStore{}, nil, err
	}

	if cfg.DatabaseReplicaURL == "" {
		store, storeErr := sqlengine.NewLibraryStoreFromSQLDB(primary, options...)
		if storeErr != nil {
			_ = primary.Close()
			return sqlengine.LibraryStore{}, nil, storeErr
		}

		return store, primary.Close, nil
	}

	replica, err := OpenPostgresSQLDB(ctx, cfg.DatabaseReplicaURL)
	if err != nil {
		_ = primary.Close()
		return sqlengine.LibraryStore{}, nil, err
	}

	closeAll := func() error { return errors.Join(replica.Close(), primary.Close()) }

	store, err := sqlengine.NewLibraryStoreFromSQLDBWithReplica(primary, replica, options...)
	if err != nil {
		_ = closeAll()
		return sqlengine.LibraryStore{}, nil, err
	}

	return store, closeAll, nil
}

func openSQLXStore(ctx context.Context, cfg Config, options []sqlengine.Option) (sqlengine.LibraryStore, Closer, error) {
	options = append([]sqlengine.Option{sqlengine.WithDialect(sqlengine.DialectPostgres)}, options...)

	primary, err := OpenPostgresSQLX(ctx, cfg.DatabaseURL)
	if err != nil {
		return sqlengine.LibraryStore{}, nil, err
	}

	if cfg.DatabaseReplicaURL == "" {
		store, storeErr := sqlengine.NewLibraryStoreFromSQLX(primary, options...)
		if storeErr != nil {
			_ = primary.Close()
			return sqlengine.LibraryStore{}, nil, storeErr
		}

		return store, primary.Close, nil
	}

	replica, err := OpenPostgresSQLX(ctx, cfg.DatabaseReplicaURL)
	if err != nil {
		_ = primary.Close()
		return sqlengine.LibraryStore{}, nil, err
	}

	closeAll := func() error { return errors.Join(replica.Close(), primary.Close()) }

	store, err := sqlengine.NewLibraryStoreFromSQLXWithReplica(primary, replica, options...)
	if err != nil {
		_ = closeAll()
		return sqlengine.LibraryStore{}, nil, err
	}

	return store, closeAll, nil
}
