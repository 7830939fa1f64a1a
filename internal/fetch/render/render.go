// Package render abstracts headless-browser page rendering for career
// sites that only produce job markup after executing JavaScript.
package render

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hirelens/hirelens/config"
)

// ErrUnavailable is returned by renderers that cannot execute JavaScript,
// letting callers map the failure to a requires-JS outcome instead of a
// transport error.
var ErrUnavailable = errors.New("page renderer unavailable")

// PageRenderer loads a URL in a JavaScript-capable environment and
// returns the rendered DOM as HTML.
type PageRenderer interface {
	Render(ctx context.Context, url string) (string, error)
	Close() error
}

// FromConfig builds the renderer selected by cfg.Mode.
func FromConfig(cfg config.RendererConfig, logger *slog.Logger) PageRenderer {
	switch cfg.Mode {
	case config.RendererModeChromedp:
		return NewChromeRenderer(cfg, logger)
	default:
		return NoopRenderer{}
	}
}
