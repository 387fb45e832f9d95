package listbooks

import (
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// ProjectBooks maps the stored books into the query result, keeping their order.
func ProjectBooks(records librarystore.BookRecords) Books {
	books := Books{Books: make([]core.Book, 0, len(records))}

	for _, record := range records {
		books.Books = append(books.Books, shell.BookFromRecord(record))
	}

	books.Count = len(books.Books)

	return books
}
