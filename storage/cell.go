package storage

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

const persistTimeout = 10 * time.Second

// Health reports whether the most recent durable write succeeded. A
// failed save leaves the in-memory value authoritative for the rest of
// the session, so this is a warning signal, not an error state.
type Health struct {
	mu            sync.Mutex
	lastSaveOK    bool
	lastSaveError string
	lastSaveTime  time.Time
}

// NewHealth returns a Health that reports OK until a save fails
func NewHealth() *Health {
	return &Health{lastSaveOK: true}
}

func (h *Health) record(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastSaveTime = time.Now()
	if err != nil {
		h.lastSaveOK = false
		h.lastSaveError = err.Error()
		return
	}
	h.lastSaveOK = true
	h.lastSaveError = ""
}

// Status returns the current save health snapshot
func (h *Health) Status() (ok bool, lastError string, lastSave time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastSaveOK, h.lastSaveError, h.lastSaveTime
}

// Cell binds one named value to durable storage. Binding seeds the value
// from the store, falling back to the provided default when the key is
// absent or unreadable. Every mutation persists the new value; write
// failures are swallowed and reported through Health.
type Cell[T any] struct {
	kv     KV
	key    string
	health *Health
	value  T
}

// Bind loads the stored value for key, or seeds it with def when absent
// or corrupt. A corrupt entry is treated as empty state, not an error.
func Bind[T any](kv KV, key string, def T, health *Health) *Cell[T] {
	c := &Cell[T]{kv: kv, key: key, health: health, value: def}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		zap.S().Warnw("failed to read stored cell, using seed value",
			"key", key, "error", err)
		return c
	}
	if !ok {
		return c
	}

	var stored T
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		zap.S().Warnw("stored cell is unreadable, using seed value",
			"key", key, "error", err)
		return c
	}
	c.value = stored
	return c
}

// Get returns the current in-memory value
func (c *Cell[T]) Get() T {
	return c.value
}

// Mutate replaces the value and persists it. The in-memory value is
// updated even when the durable write fails.
func (c *Cell[T]) Mutate(v T) {
	c.value = v

	raw, err := json.Marshal(v)
	if err != nil {
		zap.S().Errorw("failed to serialize cell value", "key", c.key, "error", err)
		c.health.record(err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := c.kv.Set(ctx, c.key, string(raw)); err != nil {
		zap.S().Warnw("failed to persist cell, in-memory value remains authoritative",
			"key", c.key, "error", err)
		c.health.record(err)
		return
	}
	c.health.record(nil)
}
