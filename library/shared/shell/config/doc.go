// Package config loads the configuration of the library backend from the environment
// and builds the database connections and OpenTelemetry providers from it.
//
// A .env file in the working directory is loaded first, variables that are already set win.
// Supported drivers are pgx (pgxpool), postgres (database/sql with lib/pq), sqlx (lib/pq) and sqlite3.
//
// This package is part of the shell (infrastructure) layer.
package config
