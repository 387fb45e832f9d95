// Package sqlengine provides the SQL implementation of the library store.
//
// The store persists users, books, borrow records and named sequences in four tables
// and supports PostgreSQL (through pgx, database/sql with lib/pq, or sqlx) as well as
// SQLite (through database/sql with mattn/go-sqlite3) for single-node deployments and tests.
//
// All statements are built with goqu and fully interpolated. Every write is a single
// statement, and writes that depend on previously read state are conditional:
//   - book updates compare the stored version with the expected one
//   - returning a borrow only applies while returned_at is still NULL
//   - role changes only apply while the role is still the expected one
//   - deleting a user only applies while the user has no active borrow
//
// A conditional write that affects no rows is reported as librarystore.ErrConcurrencyConflict.
// Unique constraint violations are reported as librarystore.ErrDuplicateRecord.
//
// Usage examples:
//
//	// PostgreSQL through a pgx pool, reads with eventual consistency go to the replica
//	store, _ := sqlengine.NewLibraryStoreFromPGXPoolWithReplica(primary, replica)
//
//	// SQLite through database/sql
//	db, _ := sql.Open("sqlite3", "file:library.db?_busy_timeout=5000&_foreign_keys=1")
//	store, _ := sqlengine.NewLibraryStoreFromSQLDB(
//		db,
//		sqlengine.WithDialect(sqlengine.DialectSQLite3),
//		sqlengine.WithLogger(slog.Default()),
//	)
//
//	_ = store.CreateSchema(ctx)
//	id, _ := store.NextSequenceValue(ctx, sqlengine.SequenceBookID)
package sqlengine
