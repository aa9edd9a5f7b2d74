package backend

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore reads the bearer token the admin UI persisted for the gateway.
// The token lives in a plain file so operators can rotate it without a
// restart; expired tokens are never attached.
type TokenStore struct {
	path string

	mu       sync.Mutex
	cached   string
	cachedAt time.Time
}

// NewTokenStore points the store at the configured token file.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Token returns the current bearer token, or "" when none is stored or the
// stored one has expired.
func (s *TokenStore) Token() string {
	if s == nil || s.path == "" {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == "" || time.Since(s.cachedAt) > time.Minute {
		raw, err := os.ReadFile(s.path)
		if err != nil {
			s.cached = ""
			return ""
		}
		s.cached = strings.TrimSpace(string(raw))
		s.cachedAt = time.Now()
	}

	if s.cached != "" && expired(s.cached) {
		return ""
	}
	return s.cached
}

// Save persists a fresh token.
func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path, []byte(strings.TrimSpace(token)+"\n"), 0o600); err != nil {
		return err
	}
	s.cached = strings.TrimSpace(token)
	s.cachedAt = time.Now()
	return nil
}

// expired inspects the token's exp claim without verifying the signature;
// verification is the backend's job, the store only avoids sending tokens the
// backend is guaranteed to reject.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Opaque tokens pass through untouched.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
