package store

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/chacha20poly1305"
)

// DefaultSessionCookie names the session cookie when none is configured.
const DefaultSessionCookie = "formpdf_session"

// Sessions issues and recognises session ids. The id is a random UUID
// carried in an HttpOnly cookie encrypted with XChaCha20-Poly1305 under a
// key derived from the configured secret.
type Sessions struct {
	name   string
	ttl    time.Duration
	secure bool
	sealer *sealer
	newID  func() string
}

// NewSessions derives the cookie key from secret.
func NewSessions(secret, cookieName string, ttl time.Duration) (*Sessions, error) {
	key, err := deriveKey([]byte(secret), infoSessionKey, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	s, err := newSealer(key)
	if err != nil {
		return nil, err
	}
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Sessions{
		name:   cookieName,
		ttl:    ttl,
		sealer: s,
		newID:  func() string { return uuid.NewString() },
	}, nil
}

// SetSecure marks issued cookies Secure.
func (s *Sessions) SetSecure(secure bool) {
	s.secure = secure
}

// CookieName reports the session cookie name.
func (s *Sessions) CookieName() string {
	return s.name
}

// Lookup returns the session id carried by r, if any and valid.
func (s *Sessions) Lookup(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	plain, err := s.sealer.open(c.Value)
	if err != nil {
		return "", false
	}
	id, err := uuid.ParseBytes(plain)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Ensure returns the session id for r, issuing a new one when the request
// carries none. The cookie is re-issued either way so its lifetime slides
// with activity.
func (s *Sessions) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	id, ok := s.Lookup(r)
	if !ok {
		id = s.newID()
	}
	sealed, err := s.sealer.seal([]byte(id))
	if err != nil {
		return "", fmt.Errorf("store: seal session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    sealed,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

type sessionKey struct{}

// WithSessionID stores the session id in ctx.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionID returns the session id stored in ctx.
func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey{}).(string)
	return id, ok && id != ""
}
