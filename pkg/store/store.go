package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formpdf/pkg/contact"
)

// ErrNotFound is returned by Require when a session has no stored record.
var ErrNotFound = errors.New("store: record not found")

// Backend names accepted by Open.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverCookie = "cookie"
)

// DefaultTTL bounds how long a record survives between screens.
const DefaultTTL = 30 * time.Minute

// Store keeps one record per session. Implementations are safe for
// concurrent use.
type Store interface {
	Save(ctx context.Context, sessionID string, rec contact.Record) error
	Load(ctx context.Context, sessionID string) (contact.Record, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// Require loads a record and reports a missing one as ErrNotFound.
func Require(ctx context.Context, s Store, sessionID string) (contact.Record, error) {
	rec, ok, err := s.Load(ctx, sessionID)
	if err != nil {
		return contact.Record{}, err
	}
	if !ok {
		return contact.Record{}, ErrNotFound
	}
	return rec, nil
}

// Options selects and configures a backend.
type Options struct {
	Driver string
	TTL    time.Duration
	// Secret keys the session cookie cipher and the cookie backend's
	// signatures.
	Secret string
	// App namespaces Redis keys and cookie names.
	App   string
	Redis RedisOptions
}

// Open builds the backend named by opts.Driver. An empty driver selects the
// memory backend.
func Open(opts Options) (Store, error) {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if strings.TrimSpace(opts.App) == "" {
		opts.App = "formpdf"
	}

	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverMemory:
		return NewMemory(opts.TTL), nil
	case DriverRedis:
		return NewRedis(opts.Redis, opts.App, opts.TTL)
	case DriverCookie:
		return NewCookie(opts.Secret, opts.App+"_record", opts.TTL)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", opts.Driver)
	}
}

// Close releases backend resources when the store holds any.
func Close(s Store) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
