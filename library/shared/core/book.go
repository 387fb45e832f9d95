package core

import (
	"strings"
)

// DefaultCopiesOnAdd is the number of copies a book gets when the caller does not say otherwise.
const DefaultCopiesOnAdd = 1

// Book is a catalog entry with its copy accounting.
//
// AvailableCopies + BorrowedCopies == TotalCopies holds for every Book produced by the transitions below,
// and no counter ever becomes negative. Available mirrors AvailableCopies > 0, except after an
// OverrideAvailability, which sets it explicitly.
type Book struct {
	ID              int64
	Title           string
	Author          string
	TotalCopies     int64
	AvailableCopies int64
	BorrowedCopies  int64
	Available       bool
	Discontinued    bool
	Version         int64
}

// NewBook builds a fresh catalog entry where every copy is on the shelf.
func NewBook(id int64, title, author string, copies int64) (Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if title == "" {
		return Book{}, InvalidArgument("Title must not be empty")
	}

	if author == "" {
		return Book{}, InvalidArgument("Author must not be empty")
	}

	if copies < 0 {
		return Book{}, InvalidArgument("Number of copies must not be negative")
	}

	return Book{
		ID:              id,
		Title:           title,
		Author:          author,
		TotalCopies:     copies,
		AvailableCopies: copies,
		BorrowedCopies:  0,
		Available:       copies > 0,
	}, nil
}

// MergeCopies adds the copies of a repeated add of the same title and author.
// The book becomes available again, even if it was discontinued before.
func (b Book) MergeCopies(copies int64) (Book, error) {
	if copies < 0 {
		return Book{}, InvalidArgument("Number of copies must not be negative")
	}

	b.TotalCopies += copies
	b.AvailableCopies += copies
	b.Available = true
	b.Discontinued = false

	return b, nil
}

// AddCopies puts n new copies on the shelf.
func (b Book) AddCopies(n int64) (Book, error) {
	if n <= 0 {
		return Book{}, InvalidArgument("Number of copies must be positive")
	}

	b.TotalCopies += n
	b.AvailableCopies += n
	b.Available = true
	b.Discontinued = false

	return b, nil
}

// RemoveCopies takes n copies off the shelf. Copies on loan cannot be removed.
func (b Book) RemoveCopies(n int64) (Book, error) {
	if n <= 0 {
		return Book{}, InvalidArgument("Number of copies must be positive")
	}

	if n > b.AvailableCopies {
		return Book{}, FailedPrecondition(
			"Cannot remove %d copies. Only %d copies are available (not borrowed)", n, b.AvailableCopies,
		)
	}

	b.TotalCopies -= n
	b.AvailableCopies -= n
	b.Available = b.AvailableCopies > 0

	return b, nil
}

// CheckCanBeRemoved fails while copies of the book are on loan.
// The refusal is a FailedPrecondition, not a Conflict, and clears once the copies are returned.
func (b Book) CheckCanBeRemoved() error {
	if b.BorrowedCopies > 0 {
		return FailedPrecondition("Cannot discontinue book. %d copies are currently borrowed", b.BorrowedCopies)
	}

	return nil
}

// Discontinue zeroes all counters and keeps the record as discontinued.
func (b Book) Discontinue() (Book, error) {
	if err := b.CheckCanBeRemoved(); err != nil {
		return Book{}, err
	}

	b.TotalCopies = 0
	b.AvailableCopies = 0
	b.BorrowedCopies = 0
	b.Available = false
	b.Discontinued = true

	return b, nil
}

// OverrideAvailability is the administrative bulk toggle.
// true force-returns every copy, false marks every copy as borrowed. The Borrow Ledger is not consulted,
// so afterward BorrowedCopies may disagree with the number of active borrow records.
func (b Book) OverrideAvailability(available bool) Book {
	if available {
		b.AvailableCopies = b.TotalCopies
		b.BorrowedCopies = 0
	} else {
		b.AvailableCopies = 0
		b.BorrowedCopies = b.TotalCopies
	}

	b.Available = available

	return b
}

// BorrowCopy moves one copy from the shelf to a reader.
func (b Book) BorrowCopy() (Book, error) {
	if b.AvailableCopies <= 0 {
		return Book{}, FailedPrecondition("No copies of this book are currently available")
	}

	b.AvailableCopies--
	b.BorrowedCopies++
	b.Available = b.AvailableCopies > 0

	return b, nil
}

// ReturnCopy moves one copy from a reader back to the shelf and makes the book available.
//
// If BorrowedCopies is already 0, which only happens after an OverrideAvailability, the counters stay as
// they are: the copy was force-returned before.
func (b Book) ReturnCopy() Book {
	if b.BorrowedCopies > 0 {
		b.BorrowedCopies--
		b.AvailableCopies++
	}

	b.Available = true

	return b
}

// Reconcile aligns BorrowedCopies with the number of active borrow records in the ledger.
func (b Book) Reconcile(activeBorrows int64) Book {
	if activeBorrows < 0 {
		activeBorrows = 0
	}

	b.BorrowedCopies = activeBorrows
	b.TotalCopies = max(b.TotalCopies, activeBorrows)
	b.AvailableCopies = b.TotalCopies - activeBorrows
	b.Available = b.AvailableCopies > 0

	return b
}

// SameCounters reports whether both books carry the same counters and flags.
func (b Book) SameCounters(other Book) bool {
	return b.TotalCopies == other.TotalCopies &&
		b.AvailableCopies == other.AvailableCopies &&
		b.BorrowedCopies == other.BorrowedCopies &&
		b.Available == other.Available &&
		b.Discontinued == other.Discontinued
}

// CheckInvariant verifies the copy accounting of the book.
func (b Book) CheckInvariant() error {
	if b.TotalCopies < 0 || b.AvailableCopies < 0 || b.BorrowedCopies < 0 {
		return FailedPrecondition("Copy counters of book %d must not be negative", b.ID)
	}

	if b.AvailableCopies+b.BorrowedCopies != b.TotalCopies {
		return FailedPrecondition(
			"Copy counters of book %d are out of balance: %d available + %d borrowed != %d total",
			b.ID, b.AvailableCopies, b.BorrowedCopies, b.TotalCopies,
		)
	}

	return nil
}
