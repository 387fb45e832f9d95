// Package adapters wraps the supported database handles (pgxpool.Pool, sql.DB, sqlx.DB)
// behind one minimal interface, so the library store can run fully interpolated SQL
// without knowing which driver executes it.
//
// Every adapter accepts an optional replica handle. Reads go to the replica only when
// the context asks for eventual consistency.
package adapters
