package sqlengine

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-backend-go/librarystore"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine/internal/adapters"
)

const (
	operationInsertBorrow       = "insert_borrow"
	operationFindBorrow         = "find_borrow"
	operationFindActiveBorrow   = "find_active_borrow"
	operationListBorrows        = "list_borrows"
	operationMarkBorrowReturned = "mark_borrow_returned"
	operationListOverdueBorrows = "list_overdue_borrows"

	aliasBorrow = "r"
	aliasBook   = "b"
	aliasUser   = "u"
)

var borrowColumns = []any{colID, colUserID, colBookID, colBorrowedAt, colReturnedAt}

func scanBorrow(rows adapters.DBRows, extra ...any) (librarystore.BorrowRecord, error) {
	var (
		borrow     librarystore.BorrowRecord
		returnedAt sql.NullTime
	)

	dest := []any{&borrow.ID, &borrow.UserID, &borrow.BookID, &borrow.BorrowedAt, &returnedAt}
	if err := rows.Scan(append(dest, extra...)...); err != nil {
		return librarystore.BorrowRecord{}, err
	}

	borrow.BorrowedAt = borrow.BorrowedAt.UTC()

	if returnedAt.Valid {
		at := returnedAt.Time.UTC()
		borrow.ReturnedAt = &at
	}

	return borrow, nil
}

// InsertBorrow stores a new active borrow record.
// It returns librarystore.ErrDuplicateRecord if the user already holds an active borrow of the same book.
func (s LibraryStore) InsertBorrow(ctx context.Context, borrow librarystore.BorrowRecord) error {
	statement := s.builder().
		Insert(tableBorrows).
		Rows(goqu.Record{
			colID:         borrow.ID,
			colUserID:     borrow.UserID,
			colBookID:     borrow.BookID,
			colBorrowedAt: s.timestamp(borrow.BorrowedAt),
		})

	sqlQuery, err := s.toSQL(ctx, operationInsertBorrow, statement)
	if err != nil {
		return err
	}

	if _, err = s.runExec(ctx, operationInsertBorrow, sqlQuery); err != nil {
		return err
	}

	s.logOperation(ctx, operationInsertBorrow, logAttrBorrowID, borrow.ID, logAttrUserID, borrow.UserID, logAttrBookID, borrow.BookID)

	return nil
}

// FindBorrowByID loads one borrow record. It returns librarystore.ErrRecordNotFound if it does not exist.
func (s LibraryStore) FindBorrowByID(ctx context.Context, borrowID string) (librarystore.BorrowRecord, error) {
	borrows, err := s.findBorrows(ctx, operationFindBorrow, s.builder().
		From(tableBorrows).
		Select(borrowColumns...).
		Where(goqu.C(colID).Eq(borrowID)))
	if err != nil {
		return librarystore.BorrowRecord{}, err
	}

	if len(borrows) == 0 {
		return librarystore.BorrowRecord{}, librarystore.ErrRecordNotFound
	}

	return borrows[0], nil
}

// FindActiveBorrow loads the active borrow record of a user for one book.
// It returns librarystore.ErrRecordNotFound if the user does not hold the book.
func (s LibraryStore) FindActiveBorrow(ctx context.Context, userID string, bookID int64) (librarystore.BorrowRecord, error) {
	borrows, err := s.findBorrows(ctx, operationFindActiveBorrow, s.builder().
		From(tableBorrows).
		Select(borrowColumns...).
		Where(
			goqu.C(colUserID).Eq(userID),
			goqu.C(colBookID).Eq(bookID),
			goqu.C(colReturnedAt).IsNull(),
		))
	if err != nil {
		return librarystore.BorrowRecord{}, err
	}

	if len(borrows) == 0 {
		return librarystore.BorrowRecord{}, librarystore.ErrRecordNotFound
	}

	return borrows[0], nil
}

// ListBorrows returns the borrow records selected by the filter, the most recent borrow first.
func (s LibraryStore) ListBorrows(ctx context.Context, filter librarystore.BorrowFilter) (librarystore.BorrowRecords, error) {
	statement := s.builder().
		From(tableBorrows).
		Select(borrowColumns...).
		Order(goqu.C(colBorrowedAt).Desc(), goqu.C(colID).Asc())

	if filter.UserID() != "" {
		statement = statement.Where(goqu.C(colUserID).Eq(filter.UserID()))
	}

	if filter.ActiveOnly() {
		statement = statement.Where(goqu.C(colReturnedAt).IsNull())
	}

	return s.findBorrows(ctx, operationListBorrows, statement)
}

func (s LibraryStore) findBorrows(ctx context.Context, operation string, statement *goqu.SelectDataset) (librarystore.BorrowRecords, error) {
	sqlQuery, err := s.toSQL(ctx, operation, statement)
	if err != nil {
		return nil, err
	}

	borrows := make(librarystore.BorrowRecords, 0)

	err = s.runQuery(ctx, operation, sqlQuery, func(rows adapters.DBRows) error {
		borrow, scanErr := scanBorrow(rows)
		if scanErr != nil {
			return scanErr
		}

		borrows = append(borrows, borrow)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return borrows, nil
}

// MarkBorrowReturned stamps the return time onto an active borrow record.
// If the record was returned in the meantime or does not exist, it returns librarystore.ErrConcurrencyConflict.
func (s LibraryStore) MarkBorrowReturned(ctx context.Context, borrowID string, returnedAt time.Time) error {
	statement := s.builder().
		Update(tableBorrows).
		Set(goqu.Record{colReturnedAt: s.timestamp(returnedAt)}).
		Where(
			goqu.C(colID).Eq(borrowID),
			goqu.C(colReturnedAt).IsNull(),
		)

	sqlQuery, err := s.toSQL(ctx, operationMarkBorrowReturned, statement)
	if err != nil {
		return err
	}

	rowsAffected, err := s.runExec(ctx, operationMarkBorrowReturned, sqlQuery)
	if err != nil {
		return err
	}

	if err = s.conditionalWriteApplied(ctx, operationMarkBorrowReturned, rowsAffected, logAttrBorrowID, borrowID); err != nil {
		return err
	}

	s.logOperation(ctx, operationMarkBorrowReturned, logAttrBorrowID, borrowID)

	return nil
}

// ListOverdueBorrows returns the active borrow records borrowed before the cutoff, the oldest first,
// joined with title and author of the book and name and email of the borrower where these still exist.
func (s LibraryStore) ListOverdueBorrows(ctx context.Context, cutoff time.Time) (librarystore.OverdueBorrowRecords, error) {
	borrowCol := func(col string) exp.IdentifierExpression { return goqu.T(aliasBorrow).Col(col) }

	statement := s.builder().
		From(goqu.T(tableBorrows).As(aliasBorrow)).
		LeftJoin(
			goqu.T(tableBooks).As(aliasBook),
			goqu.On(goqu.T(aliasBook).Col(colID).Eq(borrowCol(colBookID))),
		).
		LeftJoin(
			goqu.T(tableUsers).As(aliasUser),
			goqu.On(goqu.T(aliasUser).Col(colID).Eq(borrowCol(colUserID))),
		).
		Select(
			borrowCol(colID),
			borrowCol(colUserID),
			borrowCol(colBookID),
			borrowCol(colBorrowedAt),
			borrowCol(colReturnedAt),
			goqu.T(aliasBook).Col(colTitle),
			goqu.T(aliasBook).Col(colAuthor),
			goqu.T(aliasUser).Col(colName),
			goqu.T(aliasUser).Col(colEmail),
		).
		Where(
			borrowCol(colReturnedAt).IsNull(),
			borrowCol(colBorrowedAt).Lt(s.timestamp(cutoff)),
		).
		Order(borrowCol(colBorrowedAt).Asc(), borrowCol(colID).Asc())

	sqlQuery, err := s.toSQL(ctx, operationListOverdueBorrows, statement)
	if err != nil {
		return nil, err
	}

	overdue := make(librarystore.OverdueBorrowRecords, 0)

	err = s.runQuery(ctx, operationListOverdueBorrows, sqlQuery, func(rows adapters.DBRows) error {
		var title, author, name, email sql.NullString

		borrow, scanErr := scanBorrow(rows, &title, &author, &name, &email)
		if scanErr != nil {
			return scanErr
		}

		overdue = append(overdue, librarystore.OverdueBorrowRecord{
			BorrowRecord: borrow,
			BookTitle:    nullableString(title),
			BookAuthor:   nullableString(author),
			UserName:     nullableString(name),
			UserEmail:    nullableString(email),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return overdue, nil
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}

	return &value.String
}
