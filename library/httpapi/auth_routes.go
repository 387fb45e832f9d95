package httpapi

import (
	"net/http"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/authenticateuser"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/getuser"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	userID, err := s.newID()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, _, err := s.handlers.RegisterUser.Handle(
		r.Context(),
		registeruser.BuildCommand(userID, req.Name, req.Email, req.Password, req.Role),
	)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// login takes the OAuth2 password form fields username and password.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, core.InvalidArgument("Malformed form body"))
		return
	}

	authenticated, err := s.handlers.AuthenticateUser.Handle(
		r.Context(),
		authenticateuser.BuildQuery(r.PostForm.Get("username"), r.PostForm.Get("password")),
	)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: authenticated.Token.AccessToken,
		TokenType:   authenticated.Token.TokenType,
	})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFrom(r.Context())

	user, err := s.handlers.GetUser.Handle(r.Context(), getuser.BuildQuery(principal.UserID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
