package sqlengine

import (
	"context"
	"fmt"
)

const operationCreateSchema = "create_schema"

// columnTypes holds the dialect specific column types used by the schema.
type columnTypes struct {
	bigint    string
	timestamp string
}

func (s LibraryStore) columnTypes() columnTypes {
	if s.dialect == DialectSQLite3 {
		return columnTypes{bigint: "INTEGER", timestamp: "TIMESTAMP"}
	}

	return columnTypes{bigint: "BIGINT", timestamp: "TIMESTAMPTZ"}
}

// schemaStatements returns the idempotent DDL of the library schema.
//
// Borrow records carry no foreign keys: they outlive hard-deleted books and deleted users,
// the overdue listing renders such rows with placeholders.
func (s LibraryStore) schemaStatements() []string {
	t := s.columnTypes()

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			%s TEXT PRIMARY KEY,
			%s %s NOT NULL
		)`, tableCounters, colName, colSequenceValue, t.bigint),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			%s TEXT PRIMARY KEY,
			%s TEXT NOT NULL,
			%s TEXT NOT NULL,
			%s TEXT NOT NULL,
			%s TEXT NOT NULL CHECK (%s IN ('member', 'admin'))
		)`, tableUsers, colID, colName, colEmail, colPasswordHash, colRole, colRole),

		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON %s (%s)`, tableUsers, colEmail),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS users_name_idx ON %s (%s)`, tableUsers, colName),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %[1]s (
			%[2]s %[11]s PRIMARY KEY,
			%[3]s TEXT NOT NULL,
			%[4]s TEXT NOT NULL,
			%[5]s %[11]s NOT NULL,
			%[6]s %[11]s NOT NULL,
			%[7]s %[11]s NOT NULL,
			%[8]s BOOLEAN NOT NULL,
			%[9]s BOOLEAN NOT NULL DEFAULT FALSE,
			%[10]s %[11]s NOT NULL DEFAULT 1,
			CONSTRAINT books_copy_counters_check CHECK (
				%[5]s >= 0 AND %[6]s >= 0 AND %[7]s >= 0 AND %[6]s + %[7]s = %[5]s
			)
		)`, tableBooks, colID, colTitle, colAuthor, colTotalCopies, colAvailableCopies, colBorrowedCopies,
			colAvailable, colDiscontinued, colVersion, t.bigint),

		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS books_title_author_key ON %s (%s, %s)`, tableBooks, colTitle, colAuthor),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			%s TEXT PRIMARY KEY,
			%s TEXT NOT NULL,
			%s %s NOT NULL,
			%s %s NOT NULL,
			%s %s NULL
		)`, tableBorrows, colID, colUserID, colBookID, t.bigint, colBorrowedAt, t.timestamp, colReturnedAt, t.timestamp),

		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS borrow_records_active_key ON %s (%s, %s) WHERE %s IS NULL`,
			tableBorrows, colUserID, colBookID, colReturnedAt),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS borrow_records_book_idx ON %s (%s)`, tableBorrows, colBookID),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS borrow_records_borrowed_at_idx ON %s (%s)`, tableBorrows, colBorrowedAt),
	}
}

// CreateSchema creates all tables and indexes if they do not exist yet.
// It is idempotent and safe to run on every start.
func (s LibraryStore) CreateSchema(ctx context.Context) error {
	for _, statement := range s.schemaStatements() {
		if _, err := s.runExec(ctx, operationCreateSchema, statement); err != nil {
			return err
		}
	}

	s.logOperation(ctx, operationCreateSchema)

	return nil
}
