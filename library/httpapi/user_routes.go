package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/changeuserrole"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/deleteuser"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/getuser"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/listusers"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/userstats"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.handlers.ListUsers.Handle(r.Context(), listusers.BuildQuery())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponses(users.Users))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.handlers.GetUser.Handle(r.Context(), getuser.BuildQuery(chi.URLParam(r, "userID")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	deleted, _, err := s.handlers.DeleteUser.Handle(
		r.Context(),
		deleteuser.BuildCommand(chi.URLParam(r, "userID"), principal),
	)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deletedUserResponse{
		Message:       fmt.Sprintf("User '%s' (%s) has been deleted successfully", deleted.Name, deleted.Email),
		DeletedUserID: deleted.ID,
	})
}

func (s *Server) changeUserRole(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	change, _, err := s.handlers.ChangeUserRole.Handle(
		r.Context(),
		changeuserrole.BuildCommand(chi.URLParam(r, "userID"), r.URL.Query().Get("new_role"), principal),
	)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, roleChangeResponse{
		Message: fmt.Sprintf("User '%s' role changed from '%s' to '%s'", change.User.Name, change.OldRole, change.User.Role),
		UserID:  change.User.ID,
		OldRole: change.OldRole.String(),
		NewRole: change.User.Role.String(),
	})
}

func (s *Server) userStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.handlers.UserStats.Handle(r.Context(), userstats.BuildQuery())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserStatsResponse(stats))
}
