// Package scrape defines the loosely-typed row records, report types and
// heuristic table matchers used by the browser-automation scrape service.
// The scraped admin pages expose no stable DOM identifiers, so structure is
// located by best-effort rules over header text.
package scrape

import (
	"strconv"
	"strings"
)

// Row is one extracted table row, keyed by the header-cell text of its
// column. Values are either trimmed strings or float64, per CoerceCell.
type Row map[string]any

// Result is the soft-failure envelope every scrape operation returns.
// Failures degrade to Success=false with a diagnostic instead of an error so
// callers can inspect partial results and the current URL; operational
// recovery (screenshots, manual re-run) happens outside this subsystem.
type Result struct {
	// Success indicates the operation reached Done
	Success bool `json:"success"`
	// Data contains the extracted rows; empty on failure
	Data []Row `json:"data"`
	// Error is the diagnostic text when Success is false
	Error string `json:"error,omitempty"`
	// CurrentURL is the page URL at the time the result was produced
	CurrentURL string `json:"currentUrl,omitempty"`
}

// Failure builds a failed Result with the given diagnostic and URL.
func Failure(diag, currentURL string) Result {
	return Result{Success: false, Data: []Row{}, Error: diag, CurrentURL: currentURL}
}

// ---------------------------------------------------------------------------
// Report types
// ---------------------------------------------------------------------------

// ReportType selects which admin report screen is scraped. Each type carries
// the template code of its screen and the header keywords used to locate its
// result table.
type ReportType string

const (
	// ReportTypeStock is the sellable stock report
	ReportTypeStock ReportType = "STOCK"
	// ReportTypeOrder is the order list report
	ReportTypeOrder ReportType = "ORDER"
	// ReportTypeProductStatus is the product listing-state report
	ReportTypeProductStatus ReportType = "PRODUCT_STATUS"
)

// IsValid returns true if the report type is known.
func (t ReportType) IsValid() bool {
	switch t {
	case ReportTypeStock, ReportTypeOrder, ReportTypeProductStatus:
		return true
	default:
		return false
	}
}

// TemplateCode returns the query-parameter code that selects this report's
// admin screen.
func (t ReportType) TemplateCode() string {
	switch t {
	case ReportTypeStock:
		return "ST01"
	case ReportTypeOrder:
		return "OD02"
	case ReportTypeProductStatus:
		return "PR03"
	default:
		return ""
	}
}

// HeaderKeywords returns the header-cell keywords that identify this
// report's result table. A candidate table must contain every keyword.
func (t ReportType) HeaderKeywords() []string {
	switch t {
	case ReportTypeStock:
		return []string{"상품코드", "가용재고"}
	case ReportTypeOrder:
		return []string{"주문번호", "주문자"}
	case ReportTypeProductStatus:
		return []string{"상품코드", "판매상태"}
	default:
		return nil
	}
}

// ---------------------------------------------------------------------------
// Cell coercion
// ---------------------------------------------------------------------------

// maxNumericCellLen bounds numeric coercion; longer digit strings (order
// numbers, phone numbers) must stay text.
const maxNumericCellLen = 12

// CoerceCell trims a raw cell value and coerces it to float64 only when it
// parses cleanly as a number and is shorter than maxNumericCellLen runes.
// The source tables carry no type information, so the rule is deliberately
// permissive.
func CoerceCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	if len([]rune(s)) >= maxNumericCellLen {
		return s
	}
	// Korean admin tables format amounts with comma separators.
	numeric := strings.ReplaceAll(s, ",", "")
	if f, err := strconv.ParseFloat(numeric, 64); err == nil {
		return f
	}
	return s
}
