package credentials

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

// TokenTypeBearer is the token type reported to clients.
const TokenTypeBearer = "bearer"

var (
	// ErrEmptySecret is returned when the service is created without a signing secret.
	ErrEmptySecret = errors.New("token signing secret must not be empty")

	// ErrNonPositiveExpiry is returned when the token lifetime is zero or negative.
	ErrNonPositiveExpiry = errors.New("token expiry must be positive")

	// ErrHashingPasswordFailed wraps errors from bcrypt.
	ErrHashingPasswordFailed = errors.New("hashing password failed")

	// ErrSigningTokenFailed wraps errors from the JWT signer.
	ErrSigningTokenFailed = errors.New("signing token failed")
)

// Claims are the JWT claims of an access token: sub holds the user id, role the user's role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Token is an issued access token.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// Service hashes passwords and issues and parses access tokens.
type Service struct {
	secret     []byte
	expiry     time.Duration
	bcryptCost int
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithBcryptCost sets the bcrypt cost, tests use bcrypt.MinCost to stay fast.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service that signs tokens with secret and lets them expire after expiry.
func NewService(secret string, expiry time.Duration, opts ...Option) (Service, error) {
	if secret == "" {
		return Service{}, ErrEmptySecret
	}

	if expiry <= 0 {
		return Service{}, ErrNonPositiveExpiry
	}

	s := Service{
		secret:     []byte(secret),
		expiry:     expiry,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s, nil
}

// HashPassword returns the bcrypt hash of the password.
func (s Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", errors.Join(ErrHashingPasswordFailed, err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether the password matches the bcrypt hash.
func (s Service) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken creates a signed access token for the principal.
func (s Service) IssueToken(principal core.Principal) (Token, error) {
	now := s.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(s.expiry)

	claims := Claims{
		Role: principal.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, errors.Join(ErrSigningTokenFailed, err)
	}

	return Token{AccessToken: signed, TokenType: TokenTypeBearer, ExpiresAt: expiresAt}, nil
}

// ParseToken validates signature, algorithm and expiry of the token and returns its principal.
// Every failure is reported as the same Unauthenticated error.
func (s Service) ParseToken(tokenString string) (core.Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return core.Principal{}, invalidToken()
	}

	if claims.Subject == "" {
		return core.Principal{}, invalidToken()
	}

	role, err := core.ParseRole(claims.Role)
	if err != nil {
		return core.Principal{}, invalidToken()
	}

	return core.Principal{UserID: claims.Subject, Role: role}, nil
}

func invalidToken() error {
	return core.Unauthenticated("Could not validate credentials")
}
