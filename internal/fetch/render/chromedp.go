package render

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/hirelens/hirelens/config"
)

// renderSettle is how long a page gets to finish client-side rendering
// after navigation completes before the DOM is captured.
const renderSettle = 2 * time.Second

// ChromeRenderer renders pages in a shared headless Chrome instance.
// The browser starts lazily on first use; each Render opens a fresh tab.
type ChromeRenderer struct {
	cfg    config.RendererConfig
	logger *slog.Logger

	mu          sync.Mutex
	browserCtx  context.Context
	cancelFuncs []context.CancelFunc
	closed      bool
}

// NewChromeRenderer constructs a renderer; the browser is not launched
// until the first Render call.
func NewChromeRenderer(cfg config.RendererConfig, logger *slog.Logger) *ChromeRenderer {
	if logger != nil {
		logger = logger.With("component", "renderer")
	}
	return &ChromeRenderer{cfg: cfg, logger: logger}
}

// Render navigates to url in a new tab, waits for client-side rendering
// to settle and returns the resulting DOM.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	browserCtx, err := r.browser(ctx)
	if err != nil {
		return "", err
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	runCtx, cancelRun := context.WithTimeout(tabCtx, r.cfg.Timeout)
	defer cancelRun()
	stop := context.AfterFunc(ctx, cancelRun)
	defer stop()

	var html string
	err = chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(renderSettle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

// browser returns the shared browser context, launching Chrome on first use.
func (r *ChromeRenderer) browser(ctx context.Context) (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrUnavailable
	}
	if r.browserCtx != nil {
		return r.browserCtx, nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Navigating to about:blank forces the browser process to start, so
	// launch failures surface here instead of on the first real render.
	startCtx, cancelStart := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancelStart()
	stop := context.AfterFunc(ctx, cancelStart)
	defer stop()
	if err := chromedp.Run(startCtx, chromedp.Navigate("about:blank")); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, err
	}

	if r.logger != nil {
		r.logger.InfoContext(ctx, "headless browser started")
	}
	r.browserCtx = browserCtx
	r.cancelFuncs = []context.CancelFunc{cancelBrowser, cancelAlloc}
	return browserCtx, nil
}

// Close shuts the browser down. Subsequent Render calls fail with
// ErrUnavailable.
func (r *ChromeRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	for _, cancel := range r.cancelFuncs {
		cancel()
	}
	r.cancelFuncs = nil
	r.browserCtx = nil
	return nil
}
