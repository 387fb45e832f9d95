// Package librarystore provides the storage abstractions for the library backend:
// the records persisted for users, books, borrow records and named sequences,
// the sentinel errors returned by storage engines, the consistency level carried
// in the context, and the dependency-free observability interfaces.
//
// Storage engines never make business decisions. They execute single-statement,
// conditional writes and report a lost race as ErrConcurrencyConflict so that the
// calling command handler can reload, decide again and retry.
//
// Common usage pattern:
//
//	ctx = librarystore.WithStrongConsistency(ctx)
//
//	book, err := store.FindBookByID(ctx, bookID)
//	if err != nil {
//		// handle error
//	}
//
//	// decide on the new counters, then persist them with compare-and-swap
//	err = store.UpdateBook(ctx, changed, book.Version)
//	if errors.Is(err, librarystore.ErrConcurrencyConflict) {
//		// reload and try again
//	}
package librarystore
