package sqlengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-backend-go/librarystore"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine/internal/adapters"
)

const (
	operationFindBook            = "find_book"
	operationFindBookByTitle     = "find_book_by_title_author"
	operationListBooks           = "list_books"
	operationInsertBook          = "insert_book"
	operationUpdateBook          = "update_book"
	operationDeleteBook          = "delete_book"
	operationApplyCopyDelta      = "apply_copy_delta"
	operationCountActiveByBookID = "count_active_borrows_by_book"
)

var bookColumns = []any{
	colID, colTitle, colAuthor, colTotalCopies, colAvailableCopies, colBorrowedCopies,
	colAvailable, colDiscontinued, colVersion,
}

func scanBook(rows adapters.DBRows) (librarystore.BookRecord, error) {
	var book librarystore.BookRecord

	err := rows.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.TotalCopies,
		&book.AvailableCopies,
		&book.BorrowedCopies,
		&book.Available,
		&book.Discontinued,
		&book.Version,
	)

	return book, err
}

// FindBookByID loads one book. It returns librarystore.ErrRecordNotFound if the book does not exist.
func (s LibraryStore) FindBookByID(ctx context.Context, bookID int64) (librarystore.BookRecord, error) {
	statement := s.builder().
		From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C(colID).Eq(bookID))

	return s.findOneBook(ctx, operationFindBook, statement)
}

// FindBookByTitleAndAuthor loads the book identified by the (title, author) pair.
// It returns librarystore.ErrRecordNotFound if no such book exists.
func (s LibraryStore) FindBookByTitleAndAuthor(ctx context.Context, title string, author string) (librarystore.BookRecord, error) {
	statement := s.builder().
		From(tableBooks).
		Select(bookColumns...).
		Where(
			goqu.C(colTitle).Eq(title),
			goqu.C(colAuthor).Eq(author),
		)

	return s.findOneBook(ctx, operationFindBookByTitle, statement)
}

func (s LibraryStore) findOneBook(ctx context.Context, operation string, statement *goqu.SelectDataset) (librarystore.BookRecord, error) {
	sqlQuery, err := s.toSQL(ctx, operation, statement.Limit(1))
	if err != nil {
		return librarystore.BookRecord{}, err
	}

	var book librarystore.BookRecord
	found := false

	err = s.runQuery(ctx, operation, sqlQuery, func(rows adapters.DBRows) error {
		var scanErr error
		book, scanErr = scanBook(rows)
		found = true

		return scanErr
	})
	if err != nil {
		return librarystore.BookRecord{}, err
	}

	if !found {
		return librarystore.BookRecord{}, librarystore.ErrRecordNotFound
	}

	return book, nil
}

// ListBooks returns all books ordered by id.
func (s LibraryStore) ListBooks(ctx context.Context) (librarystore.BookRecords, error) {
	statement := s.builder().
		From(tableBooks).
		Select(bookColumns...).
		Order(goqu.C(colID).Asc())

	sqlQuery, err := s.toSQL(ctx, operationListBooks, statement)
	if err != nil {
		return nil, err
	}

	books := make(librarystore.BookRecords, 0)

	err = s.runQuery(ctx, operationListBooks, sqlQuery, func(rows adapters.DBRows) error {
		book, scanErr := scanBook(rows)
		if scanErr != nil {
			return scanErr
		}

		books = append(books, book)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return books, nil
}

// InsertBook stores a new book with version 1.
// It returns librarystore.ErrDuplicateRecord if the id or the (title, author) pair is taken.
func (s LibraryStore) InsertBook(ctx context.Context, book librarystore.BookRecord) error {
	if err := book.CheckCounters(); err != nil {
		return err
	}

	statement := s.builder().
		Insert(tableBooks).
		Rows(goqu.Record{
			colID:              book.ID,
			colTitle:           book.Title,
			colAuthor:          book.Author,
			colTotalCopies:     book.TotalCopies,
			colAvailableCopies: book.AvailableCopies,
			colBorrowedCopies:  book.BorrowedCopies,
			colAvailable:       book.Available,
			colDiscontinued:    book.Discontinued,
			colVersion:         1,
		})

	sqlQuery, err := s.toSQL(ctx, operationInsertBook, statement)
	if err != nil {
		return err
	}

	if _, err = s.runExec(ctx, operationInsertBook, sqlQuery); err != nil {
		return err
	}

	s.logOperation(ctx, operationInsertBook, logAttrBookID, book.ID)

	return nil
}

// UpdateBook overwrites title, author, counters and flags of a book with compare-and-swap semantics.
// The update only applies while the stored version equals expectedVersion, and it increments the version.
// Otherwise, including when the book was deleted in the meantime, it returns librarystore.ErrConcurrencyConflict.
func (s LibraryStore) UpdateBook(ctx context.Context, book librarystore.BookRecord, expectedVersion int64) error {
	if err := book.CheckCounters(); err != nil {
		return err
	}

	statement := s.builder().
		Update(tableBooks).
		Set(goqu.Record{
			colTitle:           book.Title,
			colAuthor:          book.Author,
			colTotalCopies:     book.TotalCopies,
			colAvailableCopies: book.AvailableCopies,
			colBorrowedCopies:  book.BorrowedCopies,
			colAvailable:       book.Available,
			colDiscontinued:    book.Discontinued,
			colVersion:         expectedVersion + 1,
		}).
		Where(
			goqu.C(colID).Eq(book.ID),
			goqu.C(colVersion).Eq(expectedVersion),
		)

	sqlQuery, err := s.toSQL(ctx, operationUpdateBook, statement)
	if err != nil {
		return err
	}

	rowsAffected, err := s.runExec(ctx, operationUpdateBook, sqlQuery)
	if err != nil {
		return err
	}

	return s.conditionalWriteApplied(
		ctx,
		operationUpdateBook,
		rowsAffected,
		logAttrBookID, book.ID,
		logAttrExpectedVersion, expectedVersion,
	)
}

// DeleteBook removes a book that has no borrowed copies.
// The delete only applies while the stored version equals expectedVersion and no copy is borrowed,
// otherwise it returns librarystore.ErrConcurrencyConflict.
func (s LibraryStore) DeleteBook(ctx context.Context, bookID int64, expectedVersion int64) error {
	statement := s.builder().
		Delete(tableBooks).
		Where(
			goqu.C(colID).Eq(bookID),
			goqu.C(colVersion).Eq(expectedVersion),
			goqu.C(colBorrowedCopies).Eq(0),
		)

	sqlQuery, err := s.toSQL(ctx, operationDeleteBook, statement)
	if err != nil {
		return err
	}

	rowsAffected, err := s.runExec(ctx, operationDeleteBook, sqlQuery)
	if err != nil {
		return err
	}

	if err = s.conditionalWriteApplied(
		ctx,
		operationDeleteBook,
		rowsAffected,
		logAttrBookID, bookID,
		logAttrExpectedVersion, expectedVersion,
	); err != nil {
		return err
	}

	s.logOperation(ctx, operationDeleteBook, logAttrBookID, bookID)

	return nil
}

// ApplyCopyDelta shifts the available and borrowed counters of a book by the given delta in one atomic
// statement, without comparing versions. It is meant for compensating a half-finished borrow or return.
// The available flag follows the new available counter and the version is incremented.
//
// The counter check constraint rejects deltas that would break the copy accounting,
// in that case librarystore.ErrCopyCountersOutOfBalance is returned.
// A missing book is reported as librarystore.ErrConcurrencyConflict.
func (s LibraryStore) ApplyCopyDelta(ctx context.Context, bookID int64, delta librarystore.CopyDelta) error {
	statement := s.builder().
		Update(tableBooks).
		Set(goqu.Record{
			colAvailableCopies: goqu.L(colAvailableCopies+" + ?", delta.Available),
			colBorrowedCopies:  goqu.L(colBorrowedCopies+" + ?", delta.Borrowed),
			colTotalCopies:     goqu.L(colTotalCopies+" + ?", delta.Available+delta.Borrowed),
			colAvailable:       goqu.L(colAvailableCopies+" + ? > 0", delta.Available),
			colVersion:         goqu.L(colVersion + " + 1"),
		}).
		Where(goqu.C(colID).Eq(bookID))

	sqlQuery, err := s.toSQL(ctx, operationApplyCopyDelta, statement)
	if err != nil {
		return err
	}

	rowsAffected, err := s.runExec(ctx, operationApplyCopyDelta, sqlQuery)
	if err != nil {
		return err
	}

	if err = s.conditionalWriteApplied(ctx, operationApplyCopyDelta, rowsAffected, logAttrBookID, bookID); err != nil {
		return err
	}

	s.logOperation(ctx, operationApplyCopyDelta, logAttrBookID, bookID)

	return nil
}

// CountActiveBorrowsByBook returns the number of active borrow records for every book that has at least one.
func (s LibraryStore) CountActiveBorrowsByBook(ctx context.Context) ([]librarystore.ActiveBorrowCount, error) {
	statement := s.builder().
		From(tableBorrows).
		Select(goqu.C(colBookID), goqu.COUNT(goqu.Star())).
		Where(goqu.C(colReturnedAt).IsNull()).
		GroupBy(goqu.C(colBookID)).
		Order(goqu.C(colBookID).Asc())

	sqlQuery, err := s.toSQL(ctx, operationCountActiveByBookID, statement)
	if err != nil {
		return nil, err
	}

	counts := make([]librarystore.ActiveBorrowCount, 0)

	err = s.runQuery(ctx, operationCountActiveByBookID, sqlQuery, func(rows adapters.DBRows) error {
		var count librarystore.ActiveBorrowCount
		if scanErr := rows.Scan(&count.BookID, &count.Count); scanErr != nil {
			return scanErr
		}

		counts = append(counts, count)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return counts, nil
}
