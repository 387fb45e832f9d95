package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

const (
	detailConcurrentModification = "The record was modified concurrently, please retry"
	detailInternalError          = "Internal server error"
	detailInvalidToken           = "Could not validate credentials"
	detailTooManyRequests        = "Too many requests, please try again later"

	logMsgRequestFailed = "request failed"
)

var statusByKind = map[error]int{
	core.ErrInvalidArgument:    http.StatusBadRequest,
	core.ErrUnauthenticated:    http.StatusUnauthorized,
	core.ErrPermissionDenied:   http.StatusForbidden,
	core.ErrNotFound:           http.StatusNotFound,
	core.ErrConflict:           http.StatusConflict,
	core.ErrFailedPrecondition: http.StatusUnprocessableEntity,
}

// StatusFor maps an error returned by a use case to the HTTP status code of the response.
func StatusFor(err error) int {
	var businessErr core.Error
	if errors.As(err, &businessErr) {
		if status, ok := statusByKind[businessErr.Kind()]; ok {
			return status
		}
	}

	if errors.Is(err, librarystore.ErrConcurrencyConflict) {
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	switch {
	case core.IsBusinessError(err):
		if status == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}

		writeDetail(w, status, err.Error())

	case status == http.StatusConflict:
		writeDetail(w, status, detailConcurrentModification)

	default:
		s.logger.ErrorContext(r.Context(), logMsgRequestFailed,
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)

		writeDetail(w, http.StatusInternalServerError, detailInternalError)
	}
}
