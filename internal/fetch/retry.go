package fetch

import (
	"crypto/rand"
	"encoding/binary"
	"net/http"
	"strconv"
	"time"
)

const (
	backoffFactor = 2
	// maxRetryAfter caps server-supplied Retry-After values so a hostile
	// or misconfigured upstream cannot stall a pass.
	maxRetryAfter = 60 * time.Second
	// jitterRatio spreads retries ±30% around the computed delay.
	jitterRatio = 0.3
)

// backoffDelay returns the wait before retry number n (1-based), growing
// exponentially from base with random jitter applied.
func backoffDelay(base time.Duration, n int) time.Duration {
	if base <= 0 {
		base = time.Second
	}
	delay := base
	for i := 1; i < n; i++ {
		delay *= backoffFactor
	}
	return applyJitter(delay)
}

// applyJitter shifts d by a random amount in [-jitterRatio, +jitterRatio].
func applyJitter(d time.Duration) time.Duration {
	span := int64(float64(d) * jitterRatio * 2)
	if span <= 0 {
		return d
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return d
	}
	offset := int64(binary.BigEndian.Uint64(buf[:])%uint64(span)) - span/2
	return d + time.Duration(offset)
}

// retryAfterDelay parses a Retry-After response header, returning zero
// when absent or unparseable. Both delta-seconds and HTTP-date forms are
// accepted, and results are capped at maxRetryAfter.
func retryAfterDelay(header http.Header) time.Duration {
	value := header.Get("Retry-After")
	if value == "" {
		return 0
	}

	if secs, err := strconv.Atoi(value); err == nil {
		if secs <= 0 {
			return 0
		}
		return capDelay(time.Duration(secs) * time.Second)
	}

	if when, err := http.ParseTime(value); err == nil {
		d := time.Until(when)
		if d <= 0 {
			return 0
		}
		return capDelay(d)
	}
	return 0
}

func capDelay(d time.Duration) time.Duration {
	if d > maxRetryAfter {
		return maxRetryAfter
	}
	return d
}
