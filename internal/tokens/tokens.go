package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTTL is how long an issued access token stays valid.
const AccessTTL = time.Hour

var (
	ErrEmptySecret  = errors.New("tokens: empty signing secret")
	ErrMissingClaim = errors.New("tokens: missing identity claim")
)

type AccessClaims struct {
	Email     string `json:"email"`
	AccountID string `json:"accountId"`
	jwt.RegisteredClaims
}

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	Email     string
	AccountID string
	ExpiresAt time.Time
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Manager)

// WithClock replaces time.Now for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

func NewManager(secret []byte, opts ...Option) (*Manager, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	m := &Manager{
		secret: append([]byte(nil), secret...),
		ttl:    AccessTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue signs an access token for the account and returns it with its expiry.
func (m *Manager) Issue(email, accountID string) (string, time.Time, error) {
	issuedAt := m.now()
	exp := issuedAt.Add(m.ttl)

	claims := AccessClaims{
		Email:     email,
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return token, exp, nil
}

// Parse verifies signature, algorithm and expiry and returns the identity.
func (m *Manager) Parse(tokenStr string) (*Identity, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Email == "" || claims.AccountID == "" {
		return nil, ErrMissingClaim
	}

	return &Identity{
		Email:     claims.Email,
		AccountID: claims.AccountID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
