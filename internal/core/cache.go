// Package core provides the business logic and service layer for the hirelens pipeline.
package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hirelens/hirelens/internal/domain/model"
)

// CacheRepository defines the interface for caching operations.
// This follows the hexagonal architecture pattern where the core defines interfaces
// and the data layer provides implementations.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Exists checks if a key exists in the cache.
	Exists(ctx context.Context, key string) (bool, error)

	// SetTTL updates the TTL for an existing key.
	// Returns true if the key exists and TTL was updated.
	SetTTL(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// SetIfNotExists atomically sets a key only if it doesn't already exist.
	// Returns true if the key was set, false if it already existed.
	// This is useful for implementing distributed locks and deduplication.
	SetIfNotExists(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}

// ProbeCacheEntry is one remembered probe outcome for a (provider, token) pair.
type ProbeCacheEntry struct {
	ATSType    model.ATSType `json:"ats_type"`
	Token      string        `json:"token"`
	Hit        bool          `json:"hit"`
	CareersURL string        `json:"careers_url,omitempty"`
	CheckedAt  time.Time     `json:"checked_at"`
}

// ProbeCacheService remembers recent probe outcomes so repeated passes skip
// (provider, token) pairs already tested within the TTL window. Both hits and
// misses are cached; a miss is just as informative as a hit until it expires.
type ProbeCacheService struct {
	cache CacheRepository
	ttl   time.Duration
}

// ProbeCacheConfig holds configuration for probe outcome caching.
type ProbeCacheConfig struct {
	TTL time.Duration `json:"ttl"`
}

// ProbeCacheServiceOptions bundles dependencies for NewProbeCacheService.
type ProbeCacheServiceOptions struct {
	Cache  CacheRepository
	Config ProbeCacheConfig
}

// DefaultProbeCacheConfig returns a ProbeCacheConfig with sensible defaults.
func DefaultProbeCacheConfig() ProbeCacheConfig {
	return ProbeCacheConfig{
		TTL: time.Hour,
	}
}

// NewProbeCacheService creates a new ProbeCacheService.
func NewProbeCacheService(opts ProbeCacheServiceOptions) *ProbeCacheService {
	return &ProbeCacheService{
		cache: opts.Cache,
		ttl:   opts.Config.TTL,
	}
}

// Lookup returns the cached outcome for one (provider, token) pair, or nil
// when the pair has not been probed within the TTL window.
func (s *ProbeCacheService) Lookup(ctx context.Context, ats model.ATSType, token string) (*ProbeCacheEntry, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := s.cache.Get(ctx, s.probeKey(ats, token))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var entry ProbeCacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A corrupt entry reads as a miss; the pair gets probed again.
		return nil, nil
	}
	return &entry, nil
}

// Record stores the outcome of one probe attempt under the pair's key.
func (s *ProbeCacheService) Record(ctx context.Context, entry ProbeCacheEntry) error {
	if entry.Token == "" {
		return nil
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.probeKey(entry.ATSType, entry.Token), raw, s.ttl)
}

// Invalidate drops the cached outcome for a pair so the next pass probes it
// fresh. Used by one-off manual probes.
func (s *ProbeCacheService) Invalidate(ctx context.Context, ats model.ATSType, token string) error {
	if token == "" {
		return nil
	}

	_, err := s.cache.Delete(ctx, s.probeKey(ats, token))
	return err
}

// probeKey generates the cache key for a (provider, token) pair.
func (s *ProbeCacheService) probeKey(ats model.ATSType, token string) string {
	return "probe:" + string(ats) + ":" + token
}
