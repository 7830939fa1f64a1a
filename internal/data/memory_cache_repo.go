package data

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hirelens/hirelens/internal/core"
)

// MemoryCacheRepo implements the CacheRepository interface with an
// in-process map. It serves single-node deployments running without Redis;
// the probe cache and pass gate then only coordinate within one process.
type MemoryCacheRepo struct {
	mu      sync.Mutex
	entries map[string]memoryCacheEntry
	nowFunc func() time.Time
}

type memoryCacheEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// NewMemoryCacheRepo creates a new MemoryCacheRepo.
func NewMemoryCacheRepo() *MemoryCacheRepo {
	return &MemoryCacheRepo{
		entries: make(map[string]memoryCacheEntry),
		nowFunc: time.Now,
	}
}

// live returns the unexpired entry for key, evicting it lazily when the TTL
// has lapsed. Callers must hold mu.
func (r *MemoryCacheRepo) live(key string, now time.Time) (memoryCacheEntry, bool) {
	entry, ok := r.entries[key]
	if !ok {
		return memoryCacheEntry{}, false
	}
	if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
		delete(r.entries, key)
		return memoryCacheEntry{}, false
	}
	return entry, true
}

func (r *MemoryCacheRepo) expiry(ttl time.Duration, now time.Time) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// Set stores a value with the given key and TTL. A TTL of zero means the key
// never expires.
func (r *MemoryCacheRepo) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	r.entries[key] = memoryCacheEntry{value: bytes.Clone(value), expiresAt: r.expiry(ttl, now)}
	return nil
}

// Get retrieves a value by key. A missing or expired key reads as nil.
func (r *MemoryCacheRepo) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.live(key, r.nowFunc())
	if !ok {
		return nil, nil
	}
	return bytes.Clone(entry.value), nil
}

// Delete removes a key. Returns true when the key existed and was unexpired.
func (r *MemoryCacheRepo) Delete(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.live(key, r.nowFunc())
	delete(r.entries, key)
	return ok, nil
}

// Exists checks if an unexpired key exists.
func (r *MemoryCacheRepo) Exists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.live(key, r.nowFunc())
	return ok, nil
}

// SetTTL updates the TTL for an existing key. Returns true when the key
// exists and the TTL was updated.
func (r *MemoryCacheRepo) SetTTL(_ context.Context, key string, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	entry, ok := r.live(key, now)
	if !ok {
		return false, nil
	}
	entry.expiresAt = r.expiry(ttl, now)
	r.entries[key] = entry
	return true, nil
}

// SetIfNotExists sets a key only when no unexpired entry holds it. Returns
// true when the key was set.
func (r *MemoryCacheRepo) SetIfNotExists(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	if _, ok := r.live(key, now); ok {
		return false, nil
	}
	r.entries[key] = memoryCacheEntry{value: bytes.Clone(value), expiresAt: r.expiry(ttl, now)}
	return true, nil
}

// Health always reports healthy; there is no connection to check.
func (r *MemoryCacheRepo) Health(_ context.Context) error {
	return nil
}

// Ensure MemoryCacheRepo implements the CacheRepository interface.
var _ core.CacheRepository = (*MemoryCacheRepo)(nil)
