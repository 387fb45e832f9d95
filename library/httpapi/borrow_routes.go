package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/listborrows"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/overdueborrows"
)

func (s *Server) borrowBook(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	bookID, err := bookIDParam(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	borrowID, err := s.newID()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	borrow, _, err := s.handlers.BorrowBook.Handle(
		r.Context(),
		borrowbook.BuildCommand(borrowID, principal.UserID, bookID, s.now()),
	)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBorrowResponse(borrow))
}

func (s *Server) returnBook(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	borrow, _, err := s.handlers.ReturnBook.Handle(
		r.Context(),
		returnbook.BuildCommand(chi.URLParam(r, "id"), principal, s.now()),
	)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBorrowResponse(borrow))
}

func (s *Server) myBorrows(w http.ResponseWriter, r *http.Request) {
	s.listBorrows(w, r, listborrows.ScopeOwn, "")
}

func (s *Server) allBorrows(w http.ResponseWriter, r *http.Request) {
	s.listBorrows(w, r, listborrows.ScopeAll, "")
}

func (s *Server) userBorrows(w http.ResponseWriter, r *http.Request) {
	s.listBorrows(w, r, listborrows.ScopeUser, chi.URLParam(r, "userID"))
}

func (s *Server) userActiveBorrows(w http.ResponseWriter, r *http.Request) {
	s.listBorrows(w, r, listborrows.ScopeUserActive, chi.URLParam(r, "userID"))
}

func (s *Server) listBorrows(w http.ResponseWriter, r *http.Request, scope listborrows.Scope, userID string) {
	principal, _ := PrincipalFrom(r.Context())

	borrows, err := s.handlers.ListBorrows.Handle(r.Context(), listborrows.BuildQuery(scope, principal, userID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBorrowResponses(borrows.Borrows))
}

func (s *Server) overdueBorrows(w http.ResponseWriter, r *http.Request) {
	overdue, err := s.handlers.OverdueBorrows.Handle(r.Context(), overdueborrows.BuildQuery())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOverdueBorrowResponses(overdue))
}
