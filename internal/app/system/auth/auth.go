// Package auth issues and verifies the bearer tokens the mobile app and the
// admin dashboard authenticate with.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// TokenUser is what a verified token carries and what handlers read from
// r.Context().
type TokenUser struct {
	ID   string
	Name string
	Role string // admin | member
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

var (
	ErrWeakSecret   = errors.New("token signing secret must be at least 32 bytes")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Manager signs and verifies tokens.
type Manager struct {
	secret []byte
	expiry time.Duration
	log    *zap.Logger
}

// NewManager validates the signing secret and returns a Manager.
func NewManager(secret string, expiry time.Duration, logger *zap.Logger) (*Manager, error) {
	if len(secret) < 32 {
		return nil, ErrWeakSecret
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), expiry: expiry, log: logger}, nil
}

type claims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for the given user.
func (m *Manager) IssueToken(user TokenUser) (string, error) {
	now := time.Now()
	c := claims{
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// VerifyToken parses and validates a signed token.
func (m *Manager) VerifyToken(token string) (*TokenUser, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &TokenUser{ID: c.Subject, Name: c.Name, Role: c.Role}, nil
}

// CurrentUser returns the authenticated user and a "found?" flag.
func CurrentUser(r *http.Request) (*TokenUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*TokenUser)
	return u, ok
}

// LoadTokenUser injects the user into context when a valid bearer token is
// present. Requests without a token continue anonymously; RequireUser and
// RequireAdmin decide what needs authentication.
func (m *Manager) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		u, err := m.VerifyToken(raw)
		if err != nil {
			// Bad tokens are treated as anonymous, not rejected here, so
			// public endpoints keep working with a stale client token.
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), currentUserKey, u)))
	})
}

// RequireUser rejects requests with no authenticated user (401 JSON).
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose user is not an admin (401/403 JSON).
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if u.Role != "admin" {
			writeAuthError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithTestUser returns a request whose context carries the given user.
// For handler tests only.
func WithTestUser(r *http.Request, u *TokenUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"status":"error","message":"` + msg + `"}`))
}
