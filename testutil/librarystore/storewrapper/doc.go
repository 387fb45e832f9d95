// Package storewrapper creates LibraryStore instances for tests.
//
// The adapter is chosen with ADAPTER_TYPE: "sqlite3" (default) opens a fresh database file in a
// temporary directory per wrapper, "pgx.pool", "sql.db" and "sqlx.db" connect to the PostgreSQL
// database in TEST_DATABASE_URL and empty all tables first. Postgres based tests are skipped when
// TEST_DATABASE_URL is not set.
package storewrapper
