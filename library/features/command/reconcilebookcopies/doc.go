// Package reconcilebookcopies implements the Reconcile Book Copies maintenance use case.
//
// The copy counters of a book are trusted by every other use case. After an availability override they
// can disagree with the borrow ledger. This use case recounts the active borrow records per book and
// rewrites the counters of each book that deviates.
//
// A borrow or return that is in flight during the pass can be miscounted, so it is meant to run while
// the library is quiet, e.g. from libraryctl.
package reconcilebookcopies
