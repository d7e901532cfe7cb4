package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TableMatcher is one strategy for locating the result table in a document
// that exposes no stable identifiers. Matchers are tried in order; the first
// non-nil selection wins.
type TableMatcher interface {
	// Name identifies the strategy in diagnostics
	Name() string
	// Match returns the selected table, or nil when the strategy does not
	// apply to this document
	Match(doc *goquery.Document) *goquery.Selection
}

// DefaultMatchers returns the ordered matcher chain for a report type:
// header-keyword match first, most-rows fallback second.
func DefaultMatchers(t ReportType) []TableMatcher {
	return []TableMatcher{
		HeaderKeywordMatcher{Keywords: t.HeaderKeywords()},
		MostRowsMatcher{},
	}
}

// FindTable applies the matchers in order and returns the first table any of
// them selects, along with the name of the winning strategy.
func FindTable(doc *goquery.Document, matchers []TableMatcher) (*goquery.Selection, string) {
	for _, m := range matchers {
		if sel := m.Match(doc); sel != nil {
			return sel, m.Name()
		}
	}
	return nil, ""
}

// ---------------------------------------------------------------------------
// HeaderKeywordMatcher
// ---------------------------------------------------------------------------

// HeaderKeywordMatcher selects the first table whose header cells contain
// every keyword. Header cells are the th elements, or the td elements of the
// first row when the table has no th.
type HeaderKeywordMatcher struct {
	Keywords []string
}

// Name implements TableMatcher.
func (m HeaderKeywordMatcher) Name() string {
	return "header-keyword"
}

// Match implements TableMatcher.
func (m HeaderKeywordMatcher) Match(doc *goquery.Document) *goquery.Selection {
	if len(m.Keywords) == 0 {
		return nil
	}
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		header := strings.Join(HeaderCells(table), " ")
		for _, kw := range m.Keywords {
			if !strings.Contains(header, kw) {
				return true // keep looking
			}
		}
		found = table
		return false
	})
	return found
}

// ---------------------------------------------------------------------------
// MostRowsMatcher
// ---------------------------------------------------------------------------

// MostRowsMatcher selects the table with the most rows. It is the last-resort
// fallback when no keyword match succeeds: on the target screens the result
// table dwarfs the navigation and layout tables around it.
type MostRowsMatcher struct{}

// Name implements TableMatcher.
func (m MostRowsMatcher) Name() string {
	return "most-rows"
}

// Match implements TableMatcher.
func (m MostRowsMatcher) Match(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestRows := 0
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr").Length()
		if rows > bestRows {
			best = table
			bestRows = rows
		}
	})
	return best
}

// ---------------------------------------------------------------------------
// Extraction
// ---------------------------------------------------------------------------

// HeaderCells returns the trimmed header-cell texts of a table: its th
// elements, or the td elements of its first row when it has no th.
func HeaderCells(table *goquery.Selection) []string {
	var cells []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(th.Text()))
	})
	if len(cells) > 0 {
		return cells
	}
	table.Find("tr").First().Find("td").Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(td.Text()))
	})
	return cells
}

// ExtractRows parses a table into header-keyed rows. Header text becomes the
// field name of every cell beneath it; cells beyond the header width are
// dropped, and rows with no td cells (nested header rows) are skipped.
func ExtractRows(table *goquery.Selection) []Row {
	headers := HeaderCells(table)
	if len(headers) == 0 {
		return nil
	}

	var rows []Row
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		// When the table has no th, the first row is the header itself.
		if i == 0 && tr.Find("th").Length() == 0 && table.Find("th").Length() == 0 {
			return
		}
		row := make(Row, len(headers))
		cells.Each(func(j int, td *goquery.Selection) {
			if j >= len(headers) || headers[j] == "" {
				return
			}
			row[headers[j]] = CoerceCell(td.Text())
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows
}
