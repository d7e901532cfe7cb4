package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/sellerbridge/backend/internal/domain/scrape"
)

// Defaults for the MakeShop admin scrape service
const (
	makeshopDefaultNavTimeout  = 30 * time.Second
	makeshopDefaultSettleDelay = 2 * time.Second
	// makeshopMaxPages is the hard pagination ceiling guarding against a
	// malformed pager that never runs out of next links
	makeshopMaxPages = 20
)

// MakeshopConfig holds configuration and credentials for the MakeShop admin
// scrape target. The platform exposes no API; the admin web application is
// the only access path.
type MakeshopConfig struct {
	// EntryURL is the fixed login entry page
	EntryURL string
	// LoginEndpoint is the fixed endpoint the encrypted login form posts to
	LoginEndpoint string
	// ShopDomain is the mall domain typed into the login form
	ShopDomain string
	// UserID is the admin account ID
	UserID string
	// Password is the admin account password
	Password string
	// NavigationTimeout bounds every page navigation
	NavigationTimeout time.Duration
	// SettleDelay is the residual fixed wait used only where the page gives
	// no observable condition to poll
	SettleDelay time.Duration
	// MaxPages bounds pagination; 0 means the default ceiling
	MaxPages int
}

// Errors for MakeShop configuration and scraping
var (
	ErrMakeshopConfigMissingEntryURL   = errors.New("makeshop: entry url is required")
	ErrMakeshopConfigMissingCredential = errors.New("makeshop: shop domain, user id and password are required")
)

// Validate validates the configuration and fills defaults.
func (c *MakeshopConfig) Validate() error {
	if c.EntryURL == "" {
		return ErrMakeshopConfigMissingEntryURL
	}
	if c.ShopDomain == "" || c.UserID == "" || c.Password == "" {
		return ErrMakeshopConfigMissingCredential
	}
	if c.LoginEndpoint == "" {
		c.LoginEndpoint = "/login/process"
	}
	if c.NavigationTimeout == 0 {
		c.NavigationTimeout = makeshopDefaultNavTimeout
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = makeshopDefaultSettleDelay
	}
	if c.MaxPages <= 0 || c.MaxPages > makeshopMaxPages {
		c.MaxPages = makeshopMaxPages
	}
	return nil
}

// scrapeState tracks progress through one operation for diagnostics.
type scrapeState string

const (
	stateIdle            scrapeState = "Idle"
	stateBrowserAcquired scrapeState = "BrowserAcquired"
	stateLoggedIn        scrapeState = "LoggedIn"
	stateOnTargetPage    scrapeState = "OnTargetPage"
	statePaginating      scrapeState = "Paginating"
	stateDone            scrapeState = "Done"
)

// originPattern extracts the authenticated origin from the post-login URL.
var originPattern = regexp.MustCompile(`^(https?://[^/]+)`)

// Service drives the MakeShop admin through a pooled browser. Every
// operation — stock, order and product-status scrapes — walks the same state
// machine: Idle → BrowserAcquired → LoggedIn → OnTargetPage → Paginating →
// Done, with failure reachable from any state. Failures degrade to a
// scrape.Result with Success=false instead of an error so callers can
// inspect partial context; no retry happens here.
type Service struct {
	pool   *BrowserPool
	config *MakeshopConfig
	logger *zap.Logger
	waiter *Waiter
}

// NewService creates the scrape service on top of a browser pool.
func NewService(pool *BrowserPool, config *MakeshopConfig, logger *zap.Logger) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		pool:   pool,
		config: config,
		logger: logger,
		waiter: NewWaiter(250*time.Millisecond, 40),
	}, nil
}

// ScrapeStock extracts the sellable stock report.
func (s *Service) ScrapeStock(ctx context.Context) scrape.Result {
	return s.run(ctx, scrape.ReportTypeStock)
}

// ScrapeOrders extracts the order list report.
func (s *Service) ScrapeOrders(ctx context.Context) scrape.Result {
	return s.run(ctx, scrape.ReportTypeOrder)
}

// ScrapeProductStatus extracts the product listing-state report.
func (s *Service) ScrapeProductStatus(ctx context.Context) scrape.Result {
	return s.run(ctx, scrape.ReportTypeProductStatus)
}

// run walks the scrape state machine for one report type.
func (s *Service) run(ctx context.Context, reportType scrape.ReportType) scrape.Result {
	state := stateIdle
	log := s.logger.With(zap.String("report_type", string(reportType)))

	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return scrape.Failure(fmt.Sprintf("%s: browser acquire failed: %v", state, err), "")
	}
	// Page closure is guaranteed on every exit path.
	defer lease.Release()
	pageCtx := lease.Context()
	state = stateBrowserAcquired

	origin, err := s.login(pageCtx)
	if err != nil {
		return scrape.Failure(fmt.Sprintf("%s: %v", state, err), s.currentURL(pageCtx))
	}
	state = stateLoggedIn
	log.Info("makeshop: logged in", zap.String("origin", origin))

	if err := s.openReport(pageCtx, origin, reportType); err != nil {
		return scrape.Failure(fmt.Sprintf("%s: %v", state, err), s.currentURL(pageCtx))
	}
	state = stateOnTargetPage

	rows, err := s.paginate(pageCtx, reportType, log)
	if err != nil {
		return scrape.Failure(fmt.Sprintf("%s: %v", statePaginating, err), s.currentURL(pageCtx))
	}
	state = stateDone
	log.Info("makeshop: scrape complete",
		zap.String("state", string(state)),
		zap.Int("rows", len(rows)))

	return scrape.Result{Success: true, Data: rows, CurrentURL: s.currentURL(pageCtx)}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

// login drives the credential-encrypted login flow. The entry page attaches
// its crypto helper lazily, so readiness is polled instead of slept for; the
// form is encrypted by the page's own routine and posted to the fixed login
// endpoint. Success is inferred only from the URL having left the entry
// domain — the target gives no positive signal, so any unrelated redirect
// would be misread as a successful login.
func (s *Service) login(pageCtx context.Context) (string, error) {
	navCtx, cancel := context.WithTimeout(pageCtx, s.config.NavigationTimeout)
	defer cancel()
	if err := chromedp.Run(navCtx,
		chromedp.Navigate(s.config.EntryURL),
		chromedp.WaitReady("body"),
	); err != nil {
		return "", fmt.Errorf("entry page navigation failed: %w", err)
	}

	// The login page initializes its encryption helper from a deferred
	// script; the form is useless until it exists.
	err := s.waiter.PollUntil(pageCtx, "login crypto initialization", func(ctx context.Context) (bool, error) {
		var ready bool
		if err := chromedp.Run(ctx, chromedp.Evaluate(`typeof window.enc_login === 'function'`, &ready)); err != nil {
			return false, err
		}
		return ready, nil
	})
	if err != nil {
		return "", err
	}

	if err := chromedp.Run(pageCtx,
		chromedp.SetValue(`input[name="domain"]`, s.config.ShopDomain, chromedp.ByQuery),
		chromedp.SetValue(`input[name="id"]`, s.config.UserID, chromedp.ByQuery),
		chromedp.SetValue(`input[name="passwd"]`, s.config.Password, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("login form fill failed: %w", err)
	}

	// Serialize the form, run the page's own encryption routine over it and
	// submit the encrypted payload to the fixed login endpoint.
	submitJS := fmt.Sprintf(`(function() {
		var form = document.forms[0];
		var serialized = Array.prototype.map.call(form.elements, function(el) {
			return el.name + '=' + el.value;
		}).join('&');
		var hidden = form.querySelector('input[name="encrypted"]');
		if (!hidden) {
			hidden = document.createElement('input');
			hidden.type = 'hidden';
			hidden.name = 'encrypted';
			form.appendChild(hidden);
		}
		hidden.value = window.enc_login(serialized);
		form.action = %q;
		form.submit();
		return true;
	})()`, s.config.LoginEndpoint)

	var submitted bool
	if err := chromedp.Run(pageCtx, chromedp.Evaluate(submitJS, &submitted)); err != nil {
		return "", fmt.Errorf("login submit failed: %w", err)
	}

	entryHost := hostOf(s.config.EntryURL)
	var current string
	err = s.waiter.PollUntil(pageCtx, "post-login navigation", func(ctx context.Context) (bool, error) {
		if err := chromedp.Run(ctx, chromedp.Location(&current)); err != nil {
			return false, err
		}
		host := hostOf(current)
		return host != "" && host != entryHost, nil
	})
	if err != nil {
		return "", fmt.Errorf("login not confirmed, still on %s: %w", current, err)
	}

	// The admin shell keeps assembling frames after the URL changes; there
	// is nothing observable left to poll for.
	if err := sleepCtx(pageCtx, s.config.SettleDelay); err != nil {
		return "", err
	}

	match := originPattern.FindStringSubmatch(current)
	if match == nil {
		return "", fmt.Errorf("could not derive origin from post-login url %q", current)
	}
	return match[1], nil
}

// ---------------------------------------------------------------------------
// Target page
// ---------------------------------------------------------------------------

// openReport navigates to the template-keyed admin screen for the report
// type, widens the page-size control and clears the channel filter when the
// page has them, and triggers the page's own search behavior: a direct
// script call when the page defines one, otherwise a click on the button
// whose label says search.
func (s *Service) openReport(pageCtx context.Context, origin string, reportType scrape.ReportType) error {
	target := fmt.Sprintf("%s/admin/report.html?template=%s", origin, reportType.TemplateCode())

	navCtx, cancel := context.WithTimeout(pageCtx, s.config.NavigationTimeout)
	defer cancel()
	if err := chromedp.Run(navCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body"),
	); err != nil {
		return fmt.Errorf("report page navigation failed: %w", err)
	}

	adjustJS := `(function() {
		var size = document.querySelector('select[name="page_size"]');
		if (size) {
			size.value = size.options[size.options.length - 1].value;
			size.dispatchEvent(new Event('change'));
		}
		var channel = document.querySelector('select[name="channel"]');
		if (channel) {
			channel.value = '';
		}
		return true;
	})()`
	var adjusted bool
	if err := chromedp.Run(pageCtx, chromedp.Evaluate(adjustJS, &adjusted)); err != nil {
		return fmt.Errorf("report controls adjustment failed: %w", err)
	}

	searchJS := `(function() {
		if (typeof doSearch === 'function') { doSearch(); return 'script'; }
		var candidates = document.querySelectorAll('a, button, input[type="button"], input[type="submit"]');
		for (var i = 0; i < candidates.length; i++) {
			var label = (candidates[i].innerText || candidates[i].value || '').trim();
			if (label.indexOf('검색') !== -1) { candidates[i].click(); return 'button'; }
		}
		return '';
	})()`
	var how string
	if err := chromedp.Run(pageCtx, chromedp.Evaluate(searchJS, &how)); err != nil {
		return fmt.Errorf("search trigger failed: %w", err)
	}
	if how == "" {
		return errors.New("search control not found on report page")
	}

	// Results render asynchronously; a table appearing is the condition.
	return s.waiter.PollUntil(pageCtx, "result table render", func(ctx context.Context) (bool, error) {
		var tables int
		if err := chromedp.Run(ctx, chromedp.Evaluate(`document.querySelectorAll('table').length`, &tables)); err != nil {
			return false, err
		}
		return tables > 0, nil
	})
}

// ---------------------------------------------------------------------------
// Pagination
// ---------------------------------------------------------------------------

// paginate extracts the result table page by page. The pager is either a
// script call or numbered links; when neither advances, extraction is done.
// The page ceiling guards against a malformed pager.
func (s *Service) paginate(pageCtx context.Context, reportType scrape.ReportType, log *zap.Logger) ([]scrape.Row, error) {
	var all []scrape.Row
	for page := 1; page <= s.config.MaxPages; page++ {
		var html string
		if err := chromedp.Run(pageCtx, chromedp.OuterHTML("html", &html)); err != nil {
			return nil, fmt.Errorf("page %d capture failed: %w", page, err)
		}

		rows, strategy, err := extractReportTable(html, reportType)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		log.Debug("makeshop: page extracted",
			zap.Int("page", page),
			zap.Int("rows", len(rows)),
			zap.String("matcher", strategy))
		all = append(all, rows...)

		nextJS := fmt.Sprintf(`(function(next) {
			if (typeof goPage === 'function') { goPage(next); return true; }
			var links = document.querySelectorAll('a');
			for (var i = 0; i < links.length; i++) {
				if (links[i].innerText.trim() === String(next)) { links[i].click(); return true; }
			}
			return false;
		})(%d)`, page+1)
		var moved bool
		if err := chromedp.Run(pageCtx, chromedp.Evaluate(nextJS, &moved)); err != nil {
			return nil, fmt.Errorf("page %d pager probe failed: %w", page, err)
		}
		if !moved {
			break
		}
		// The pager redraws the table in place; old and new markup are
		// indistinguishable without a row marker, so a fixed settle remains.
		if err := sleepCtx(pageCtx, s.config.SettleDelay); err != nil {
			return nil, err
		}
	}
	return all, nil
}

// currentURL reads the page URL for diagnostics, best-effort.
func (s *Service) currentURL(pageCtx context.Context) string {
	var current string
	if err := chromedp.Run(pageCtx, chromedp.Location(&current)); err != nil {
		return ""
	}
	return current
}

// hostOf extracts the host of a URL, empty on parse failure.
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
