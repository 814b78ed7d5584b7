package store

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-formpdf/pkg/contact"
)

type memoryEntry struct {
	record  contact.Record
	expires time.Time
}

// Memory is the in-process backend. Expired entries are dropped on access
// and by Sweep.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty memory store.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Save(ctx context.Context, sessionID string, rec contact.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sessionID] = memoryEntry{record: rec, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Load(ctx context.Context, sessionID string) (contact.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return contact.Record{}, false, err
	}
	m.mu.RLock()
	entry, ok := m.entries[sessionID]
	m.mu.RUnlock()
	if !ok {
		return contact.Record{}, false, nil
	}
	if !m.now().Before(entry.expires) {
		m.mu.Lock()
		if current, ok := m.entries[sessionID]; ok && current.expires.Equal(entry.expires) {
			delete(m.entries, sessionID)
		}
		m.mu.Unlock()
		return contact.Record{}, false, nil
	}
	return entry.record, true, nil
}

func (m *Memory) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
	return nil
}

// Len reports the number of entries, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Sweep removes expired entries and reports how many were dropped.
func (m *Memory) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, entry := range m.entries {
		if !now.Before(entry.expires) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps on every tick until ctx is done.
func (m *Memory) RunJanitor(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Sweep()
		}
	}
}
