package scraper

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	// defaultAcquireTimeout bounds how long Acquire waits for a responsive browser
	defaultAcquireTimeout = 30 * time.Second
)

// backgroundResourcePatterns are URL patterns blocked on every scrape page.
// Images, fonts and media contribute nothing to table extraction and
// dominate load time on the themed admin screens.
var backgroundResourcePatterns = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg", "*.ico",
	"*.woff", "*.woff2", "*.ttf", "*.otf", "*.eot",
	"*.mp4", "*.webm", "*.mp3",
}

// BrowserConfig contains configuration for the shared browser process.
type BrowserConfig struct {
	// Headless mode (default: true)
	Headless bool
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// AcquireTimeout bounds how long Acquire waits for a responsive browser
	AcquireTimeout time.Duration
	// Logger for debug output
	Logger *zap.Logger
}

// BrowserPool owns the lifecycle of one shared browser process for the
// process lifetime. Callers acquire a scoped Lease holding a fresh page
// (tab) context and must release it on every exit path; the pool relaunches
// the browser when the previous process died. Two leases may be active
// concurrently against the same browser connection; each owns an
// independent page, but correctness under concurrent scrapes is unverified.
type BrowserPool struct {
	config *BrowserConfig
	logger *zap.Logger

	mu            sync.Mutex
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// ErrBrowserUnavailable indicates the browser could not be launched or
// relaunched.
var ErrBrowserUnavailable = errors.New("scraper: browser unavailable")

// NewBrowserPool creates the pool and its allocator. The browser process
// itself is launched lazily on first Acquire.
func NewBrowserPool(config *BrowserConfig) *BrowserPool {
	if config == nil {
		config = &BrowserConfig{Headless: true}
	}
	if config.AcquireTimeout == 0 {
		config.AcquireTimeout = defaultAcquireTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		// Image loading off at the renderer level; the rest is blocked per page.
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	)
	if config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &BrowserPool{
		config:      config,
		logger:      logger,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}
}

// Lease is a scoped page (tab) handed out by the pool. Release closes the
// page; it is idempotent and must run on every exit path, including failure,
// to bound resource growth.
type Lease struct {
	ctx     context.Context
	cancel  context.CancelFunc
	release sync.Once
}

// Context returns the page context for chromedp actions.
func (l *Lease) Context() context.Context {
	return l.ctx
}

// Release closes the page.
func (l *Lease) Release() {
	l.release.Do(l.cancel)
}

// Acquire returns a lease on a fresh page in the shared browser, relaunching
// the browser process when the previous one is gone.
func (p *BrowserPool) Acquire(_ context.Context) (*Lease, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureBrowserLocked(); err != nil {
		return nil, err
	}

	pageCtx, pageCancel := chromedp.NewContext(p.browserCtx)

	// Blocking background resources is per-page state.
	if err := chromedp.Run(pageCtx,
		network.Enable(),
		network.SetBlockedURLS(backgroundResourcePatterns),
	); err != nil {
		pageCancel()
		return nil, errors.Join(ErrBrowserUnavailable, err)
	}

	return &Lease{ctx: pageCtx, cancel: pageCancel}, nil
}

// ensureBrowserLocked launches or relaunches the shared browser. Caller
// holds p.mu.
func (p *BrowserPool) ensureBrowserLocked() error {
	if p.browserCtx != nil && p.browserCtx.Err() == nil && p.browserAliveLocked() {
		return nil
	}

	if p.browserCancel != nil {
		p.browserCancel()
	}
	p.logger.Info("scraper: launching browser process")

	browserCtx, browserCancel := chromedp.NewContext(p.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			p.logger.Sugar().Debugf(format, args...)
		}),
	)

	// An empty Run starts the browser and proves the connection.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		return errors.Join(ErrBrowserUnavailable, err)
	}

	p.browserCtx = browserCtx
	p.browserCancel = browserCancel
	return nil
}

// browserAliveLocked probes the existing browser connection. Caller holds
// p.mu.
func (p *BrowserPool) browserAliveLocked() bool {
	probeCtx, cancel := context.WithTimeout(p.browserCtx, 3*time.Second)
	defer cancel()
	var ok bool
	err := chromedp.Run(probeCtx, chromedp.Evaluate("true", &ok))
	if err != nil {
		p.logger.Warn("scraper: browser connection lost, will relaunch", zap.Error(err))
		return false
	}
	return ok
}

// Close shuts the browser process and allocator down.
func (p *BrowserPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.browserCancel != nil {
		p.browserCancel()
		p.browserCancel = nil
		p.browserCtx = nil
	}
	if p.allocCancel != nil {
		p.allocCancel()
	}
	return nil
}
