package prefs

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// DarkModeKey is the key the theme flag is persisted under.
const DarkModeKey = "darkMode"

// DefaultDark applies when nothing (or nothing usable) is persisted.
const DefaultDark = true

const storeTimeout = 2 * time.Second

// Theme is the persisted light/dark preference. Storage failures never reach
// the caller: the preference falls back to an in-memory value for the rest of
// the session.
type Theme struct {
	mu       sync.Mutex
	store    Store
	dark     bool
	degraded bool
	apply    func(dark bool)
	log      *slog.Logger
}

// NewTheme reads the persisted flag and applies it. apply may be nil.
func NewTheme(store Store, apply func(dark bool), logger *slog.Logger) *Theme {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	t := &Theme{store: store, apply: apply, log: logger}
	t.dark = t.read()
	if t.apply != nil {
		t.apply(t.dark)
	}
	return t
}

func (t *Theme) read() bool {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	raw, ok, err := t.store.Get(ctx, DarkModeKey)
	if err != nil {
		t.log.Warn("theme: reading preference failed; using default", "err", err)
		return DefaultDark
	}
	if !ok {
		return DefaultDark
	}
	v, ok := decodeBool(raw)
	if !ok {
		t.log.Warn("theme: ignoring malformed preference", "value", string(raw))
		return DefaultDark
	}
	return v
}

// decodeBool accepts only a JSON boolean.
func decodeBool(raw []byte) (bool, bool) {
	var x any
	if err := json.Unmarshal(raw, &x); err != nil {
		return false, false
	}
	b, ok := x.(bool)
	return b, ok
}

func (t *Theme) Get() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dark
}

// Set records dark, applies it immediately and persists it (best effort).
func (t *Theme) Set(dark bool) {
	t.mu.Lock()
	t.dark = dark
	apply := t.apply
	t.persistLocked(dark)
	t.mu.Unlock()

	if apply != nil {
		apply(dark)
	}
}

// Toggle flips and persists the flag in one critical section, so concurrent
// toggles never compute the same next value.
func (t *Theme) Toggle() bool {
	t.mu.Lock()
	next := !t.dark
	t.dark = next
	apply := t.apply
	t.persistLocked(next)
	t.mu.Unlock()

	if apply != nil {
		apply(next)
	}
	return next
}

// Degraded reports whether the durable store failed and the preference is
// now session-only.
func (t *Theme) Degraded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.degraded
}

func (t *Theme) persistLocked(dark bool) {
	if t.degraded {
		return
	}
	b, _ := json.Marshal(dark)
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := t.store.Put(ctx, DarkModeKey, b); err != nil {
		t.degraded = true
		t.log.Warn("theme: persisting preference failed; keeping it in memory for this session", "err", err)
	}
}
