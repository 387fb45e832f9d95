package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/addbookcopies"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/discontinuebook"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/overridebookavailability"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/removebook"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/removebookcopies"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/getbook"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/listbooks"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

type addBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	TotalCopies *int64 `json:"total_copies"`
}

func bookIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, core.InvalidArgument("Invalid book ID format")
	}

	return id, nil
}

func int64Query(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, core.InvalidArgument("Query parameter %s is required", name)
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, core.InvalidArgument("Query parameter %s must be an integer", name)
	}

	return value, nil
}

func boolQuery(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, core.InvalidArgument("Query parameter %s is required", name)
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, core.InvalidArgument("Query parameter %s must be a boolean", name)
	}

	return value, nil
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.handlers.ListBooks.Handle(r.Context(), listbooks.BuildQuery())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponses(books.Books))
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := bookIDParam(r, "bookID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	book, err := s.handlers.GetBook.Handle(r.Context(), getbook.BuildQuery(bookID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(book))
}

func (s *Server) addBook(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	copies := int64(core.DefaultCopiesOnAdd)
	if req.TotalCopies != nil {
		copies = *req.TotalCopies
	}

	book, _, err := s.handlers.AddBook.Handle(r.Context(), addbook.BuildCommand(req.Title, req.Author, copies))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(book))
}

func (s *Server) addBookCopies(w http.ResponseWriter, r *http.Request) {
	bookID, copies, err := bookIDAndCopies(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	book, _, err := s.handlers.AddBookCopies.Handle(r.Context(), addbookcopies.BuildCommand(bookID, copies))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bookMessageResponse{
		Message: fmt.Sprintf("Added %d copies. Total: %d, Available: %d", copies, book.TotalCopies, book.AvailableCopies),
		Book:    toBookResponse(book),
	})
}

func (s *Server) removeBookCopies(w http.ResponseWriter, r *http.Request) {
	bookID, copies, err := bookIDAndCopies(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	book, _, err := s.handlers.RemoveBookCopies.Handle(r.Context(), removebookcopies.BuildCommand(bookID, copies))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bookMessageResponse{
		Message: fmt.Sprintf("Removed %d copies. Total: %d, Available: %d", copies, book.TotalCopies, book.AvailableCopies),
		Book:    toBookResponse(book),
	})
}

func bookIDAndCopies(r *http.Request) (int64, int64, error) {
	bookID, err := bookIDParam(r, "bookID")
	if err != nil {
		return 0, 0, err
	}

	copies, err := int64Query(r, "copies")
	if err != nil {
		return 0, 0, err
	}

	return bookID, copies, nil
}

func (s *Server) overrideBookAvailability(w http.ResponseWriter, r *http.Request) {
	bookID, err := bookIDParam(r, "bookID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	available, err := boolQuery(r, "available")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	book, _, err := s.handlers.OverrideBook.Handle(r.Context(), overridebookavailability.BuildCommand(bookID, available))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bookMessageResponse{Message: "Book status updated", Book: toBookResponse(book)})
}

func (s *Server) removeBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := bookIDParam(r, "bookID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	book, _, err := s.handlers.RemoveBook.Handle(r.Context(), removebook.BuildCommand(bookID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Book '%s' has been discontinued and removed from the library", book.Title),
	})
}

func (s *Server) discontinueBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := bookIDParam(r, "bookID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	book, _, err := s.handlers.DiscontinueBook.Handle(r.Context(), discontinuebook.BuildCommand(bookID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Book '%s' has been discontinued", book.Title)})
}
