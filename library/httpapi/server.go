package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
)

const (
	defaultAuthRateLimitPerMinute = 10
	corsMaxAgeSeconds             = 300
)

// TokenParser validates bearer tokens.
type TokenParser interface {
	ParseToken(token string) (core.Principal, error)
}

// Server serves the HTTP API.
type Server struct {
	handlers    Handlers
	tokens      TokenParser
	logger      *slog.Logger
	corsOrigins []string
	trustProxy  bool
	authLimiter *clientRateLimiter
	now         func() time.Time
	newID       func() (string, error)
}

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins allows cross-origin requests from the given origins.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithTrustedProxyHeaders takes the client address from X-Forwarded-For or X-Real-IP.
// Only enable it behind a proxy that overwrites these headers.
func WithTrustedProxyHeaders() Option {
	return func(s *Server) {
		s.trustProxy = true
	}
}

// WithAuthRateLimit sets how many register and login requests one client may send per minute.
func WithAuthRateLimit(perMinute int) Option {
	return func(s *Server) {
		if perMinute > 0 {
			s.authLimiter = newClientRateLimiter(perMinute)
		}
	}
}

// WithClock replaces the wall clock used for borrow and return timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer creates a Server for the given handlers.
func NewServer(handlers Handlers, tokens TokenParser, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		handlers:    handlers,
		tokens:      tokens,
		logger:      logger,
		authLimiter: newClientRateLimiter(defaultAuthRateLimitPerMinute),
		now:         time.Now,
		newID:       shell.NewID,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Router builds the chi router with all routes and middlewares.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)

	if s.trustProxy {
		r.Use(middleware.RealIP)
	}

	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           corsMaxAgeSeconds,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.With(s.authLimiter.middleware).Post("/register", s.register)
		r.With(s.authLimiter.middleware).Post("/login", s.login)
		r.With(s.authenticate).Get("/me", s.me)
	})

	r.Route("/books", func(r chi.Router) {
		r.Get("/", s.listBooks)
		r.Get("/{bookID}", s.getBook)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate, s.requireAdmin)

			r.Post("/", s.addBook)
			r.Patch("/{bookID}/add-copies", s.addBookCopies)
			r.Patch("/{bookID}/remove-copies", s.removeBookCopies)
			r.Put("/{bookID}", s.overrideBookAvailability)
			r.Delete("/{bookID}/discontinue-copies", s.removeBook)
			r.Delete("/{bookID}/discontinue", s.discontinueBook)
		})
	})

	r.Route("/borrow", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/my-borrows", s.myBorrows)
		r.Post("/{id}", s.borrowBook)
		r.Patch("/{id}/return", s.returnBook)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Get("/all", s.allBorrows)
			r.Get("/overdue", s.overdueBorrows)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(s.authenticate, s.requireAdmin)

		r.Get("/", s.listUsers)
		r.Get("/stats/summary", s.userStats)
		r.Get("/{userID}", s.getUser)
		r.Delete("/{userID}", s.deleteUser)
		r.Patch("/{userID}/role", s.changeUserRole)
		r.Get("/{userID}/borrows", s.userBorrows)
		r.Get("/{userID}/active-borrows", s.userActiveBorrows)
	})

	return r
}
