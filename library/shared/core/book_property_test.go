package core_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// Every transition keeps the counters balanced and non-negative, whatever order they are applied in.
func Test_Book_CopyCountersStayBalanced(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		book, err := core.NewBook(1, "Solaris", "Stanislaw Lem", rapid.Int64Range(0, 20).Draw(t, "copies"))
		if err != nil {
			t.Fatalf("new book: %v", err)
		}

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			next := book

			switch rapid.IntRange(0, 7).Draw(t, "operation") {
			case 0:
				next, err = book.AddCopies(rapid.Int64Range(-2, 5).Draw(t, "add"))
			case 1:
				next, err = book.RemoveCopies(rapid.Int64Range(-2, 5).Draw(t, "remove"))
			case 2:
				next, err = book.BorrowCopy()
			case 3:
				next = book.ReturnCopy()
				err = nil
			case 4:
				next, err = book.Discontinue()
			case 5:
				next = book.OverrideAvailability(rapid.Bool().Draw(t, "available"))
				err = nil
			case 6:
				next, err = book.MergeCopies(rapid.Int64Range(0, 5).Draw(t, "merge"))
			case 7:
				next = book.Reconcile(rapid.Int64Range(0, 5).Draw(t, "active"))
				err = nil
			}

			if err != nil {
				if !core.IsBusinessError(err) {
					t.Fatalf("unexpected error kind: %v", err)
				}

				continue
			}

			if invariantErr := next.CheckInvariant(); invariantErr != nil {
				t.Fatalf("step %d: %v", i, invariantErr)
			}

			book = next
		}
	})
}

// A failing transition never changes the book it was called on.
func Test_Book_FailingTransitionsLeaveBookUnchanged(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		book, _ := core.NewBook(1, "Solaris", "Stanislaw Lem", rapid.Int64Range(0, 5).Draw(t, "copies"))
		for i := rapid.Int64Range(0, book.TotalCopies).Draw(t, "borrowed"); i > 0; i-- {
			book, _ = book.BorrowCopy()
		}

		before := book

		_, _ = book.RemoveCopies(book.AvailableCopies + rapid.Int64Range(1, 3).Draw(t, "excess"))
		_, _ = book.Discontinue()

		if !book.SameCounters(before) {
			t.Fatalf("book changed: before %+v, after %+v", before, book)
		}
	})
}
