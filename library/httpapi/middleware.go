package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/AntonStoeckl/library-backend-go/library/features/query/getuser"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

const logMsgRequestHandled = "request handled"

type principalKey struct{}

// PrincipalFrom returns the authenticated principal stored by the auth middleware.
func PrincipalFrom(ctx context.Context) (core.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(core.Principal)
	return principal, ok
}

// authenticate turns the bearer token into a Principal. The user is reloaded, so the role is the current one.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.writeError(w, r, core.Unauthenticated("Not authenticated"))
			return
		}

		claimed, err := s.tokens.ParseToken(token)
		if err != nil {
			s.writeError(w, r, core.Unauthenticated(detailInvalidToken))
			return
		}

		user, err := s.handlers.GetUser.Handle(r.Context(), getuser.BuildQuery(claimed.UserID))
		if err != nil {
			if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrInvalidArgument) {
				err = core.Unauthenticated(detailInvalidToken)
			}

			s.writeError(w, r, err)

			return
		}

		principal := core.Principal{UserID: user.ID, Role: user.Role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, principal)))
	})
}

// requireAdmin must run after authenticate.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := PrincipalFrom(r.Context())

		if err := principal.RequireAdmin(); err != nil {
			s.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.InfoContext(r.Context(), logMsgRequestHandled,
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
		)
	})
}
