package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sellerbridge/backend/internal/domain/scrape"
)

// ErrTableNotFound indicates no matcher strategy selected a result table.
var ErrTableNotFound = errors.New("scraper: result table not found")

// extractReportTable locates the result table for a report type in raw page
// HTML and parses it into header-keyed rows. The matcher chain is the
// ordered strategy list from the scrape domain: header keywords first,
// most-rows fallback second.
func extractReportTable(html string, reportType scrape.ReportType) ([]scrape.Row, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, "", fmt.Errorf("scraper: failed to parse page HTML: %w", err)
	}

	table, strategy := scrape.FindTable(doc, scrape.DefaultMatchers(reportType))
	if table == nil {
		return nil, "", ErrTableNotFound
	}
	return scrape.ExtractRows(table), strategy, nil
}
