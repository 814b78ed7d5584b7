package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/goliatone/go-formpdf/pkg/contact"
)

// maxCookieSize keeps tokens under the 4KB limit browsers enforce.
const maxCookieSize = 4000

var (
	// ErrNoExchange is returned by the cookie backend outside an HTTP request.
	ErrNoExchange = errors.New("store: cookie backend needs an http exchange")
	// ErrTooLarge is returned when a record does not fit in a cookie.
	ErrTooLarge = errors.New("store: record too large for cookie")
)

type recordClaims struct {
	Session string         `json:"sid"`
	Record  contact.Record `json:"rec"`
	jwt.RegisteredClaims
}

// Cookie keeps the record itself in an HS256-signed JWT cookie, so the
// server holds no state. Tokens are bound to the session id and expire
// with the TTL.
type Cookie struct {
	name   string
	key    []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

var _ Store = (*Cookie)(nil)

// NewCookie derives the signing key from secret.
func NewCookie(secret, name string, ttl time.Duration) (*Cookie, error) {
	key, err := deriveKey([]byte(secret), infoRecordKey, 32)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if name == "" {
		name = "formpdf_record"
	}
	return &Cookie{name: name, key: key, ttl: ttl, now: time.Now}, nil
}

// SetSecure marks issued cookies Secure.
func (c *Cookie) SetSecure(secure bool) {
	c.secure = secure
}

func (c *Cookie) Save(ctx context.Context, sessionID string, rec contact.Record) error {
	ex, ok := exchangeFrom(ctx)
	if !ok {
		return ErrNoExchange
	}
	now := c.now()
	claims := recordClaims{
		Session: sessionID,
		Record:  rec,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return fmt.Errorf("store: sign record: %w", err)
	}
	if len(signed) > maxCookieSize {
		return ErrTooLarge
	}
	ex.setCookie(&http.Cookie{
		Name:     c.name,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(c.ttl / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Load treats a missing, expired, tampered or foreign token as absent.
func (c *Cookie) Load(ctx context.Context, sessionID string) (contact.Record, bool, error) {
	ex, ok := exchangeFrom(ctx)
	if !ok {
		return contact.Record{}, false, ErrNoExchange
	}
	cookie, ok := ex.cookie(c.name)
	if !ok || cookie.Value == "" {
		return contact.Record{}, false, nil
	}

	claims := &recordClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		return c.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil || !token.Valid {
		return contact.Record{}, false, nil
	}
	if claims.Session != sessionID {
		return contact.Record{}, false, nil
	}
	return claims.Record, true, nil
}

func (c *Cookie) Delete(ctx context.Context, _ string) error {
	ex, ok := exchangeFrom(ctx)
	if !ok {
		return ErrNoExchange
	}
	ex.setCookie(&http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
