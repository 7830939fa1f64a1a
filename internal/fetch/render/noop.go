package render

import "context"

// NoopRenderer is the default renderer. It renders nothing and reports
// ErrUnavailable so callers surface a requires-JS outcome.
type NoopRenderer struct{}

func (NoopRenderer) Render(_ context.Context, _ string) (string, error) {
	return "", ErrUnavailable
}

func (NoopRenderer) Close() error { return nil }
