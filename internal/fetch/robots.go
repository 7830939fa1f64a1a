package fetch

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/hirelens/hirelens/internal/errors"
)

// robotsFetchFunc retrieves a robots.txt body. Injected by the Fetcher so
// policy fetches reuse its transport and rate limiting without the cache
// calling back into the full Do pipeline.
type robotsFetchFunc func(ctx context.Context, robotsURL string) (status int, body []byte, err error)

type robotsEntry struct {
	data      *robotstxt.RobotsData
	fetchedAt time.Time
}

// robotsCache caches parsed robots.txt per scheme+host. Entries expire
// after the configured TTL; concurrent lookups for the same host are
// coalesced so a cold host costs exactly one policy fetch.
type robotsCache struct {
	mu      sync.RWMutex
	entries map[string]*robotsEntry
	ttl     time.Duration
	fetch   robotsFetchFunc
	group   singleflight.Group
	now     func() time.Time
}

func newRobotsCache(ttl time.Duration, fetch robotsFetchFunc) *robotsCache {
	return &robotsCache{
		entries: make(map[string]*robotsEntry),
		ttl:     ttl,
		fetch:   fetch,
		now:     time.Now,
	}
}

// Allowed reports whether agent may fetch u under the host's robots.txt.
func (c *robotsCache) Allowed(ctx context.Context, u *url.URL, agent string) (bool, error) {
	key := u.Scheme + "://" + u.Host

	entry := c.lookup(key)
	if entry == nil {
		fetched, err, _ := c.group.Do(key, func() (any, error) {
			return c.refresh(ctx, key)
		})
		if err != nil {
			return false, err
		}
		entry = fetched.(*robotsEntry)
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return entry.data.TestAgent(path, agent), nil
}

func (c *robotsCache) lookup(key string) *robotsEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.fetchedAt) > c.ttl {
		return nil
	}
	return entry
}

func (c *robotsCache) refresh(ctx context.Context, key string) (*robotsEntry, error) {
	status, body, err := c.fetch(ctx, key+"/robots.txt")
	if err != nil {
		if apperrors.IsCanceled(err) || apperrors.IsTimeout(err) {
			return nil, err
		}
		// Unreachable robots.txt is treated as no policy. Parsing from a
		// 5xx status yields disallow-all per the robots exclusion draft.
		status, body = 404, nil
	}

	data, err := robotstxt.FromStatusAndBytes(status, body)
	if err != nil {
		data = allowAllRobots()
	}

	entry := &robotsEntry{data: data, fetchedAt: c.now()}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return entry, nil
}

func allowAllRobots() *robotstxt.RobotsData {
	data, err := robotstxt.FromStatusAndBytes(404, nil)
	if err != nil {
		panic(fmt.Sprintf("robots allow-all: %v", err))
	}
	return data
}
