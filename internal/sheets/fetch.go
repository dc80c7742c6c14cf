// Package sheets loads seminar attendance from the program's spreadsheet
// and answers per-student lookups from a cached snapshot.
package sheets

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mcp-tools/internal/config"
)

// ErrTabNotFound marks a seminar tab that does not exist in the
// spreadsheet. Callers treat it as zero attendance rather than failing.
var ErrTabNotFound = errors.New("spreadsheet tab not found")

// TabFetcher returns one tab's cell grid. Implementations map a missing
// tab to ErrTabNotFound.
type TabFetcher interface {
	FetchTab(ctx context.Context, name string) ([][]string, error)
}

// CSVFetcher reads tabs through the spreadsheet's CSV export endpoint, so
// no spreadsheet API client is needed for a read-only sheet.
type CSVFetcher struct {
	client        *http.Client
	urlTemplate   string
	spreadsheetID string
}

func NewCSVFetcher(cfg *config.Config) *CSVFetcher {
	return &CSVFetcher{
		client:        &http.Client{Timeout: 30 * time.Second},
		urlTemplate:   cfg.SheetCSVURL,
		spreadsheetID: cfg.SpreadsheetID,
	}
}

func (f *CSVFetcher) FetchTab(ctx context.Context, name string) ([][]string, error) {
	u := fmt.Sprintf(f.urlTemplate, f.spreadsheetID, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for tab %q: %w", name, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tab %q: %w", name, err)
	}
	defer resp.Body.Close()

	// The export endpoint answers 400/404 for unknown tab names.
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("tab %q: %w", name, ErrTabNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch tab %q: unexpected status %s", name, resp.Status)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse tab %q as CSV: %w", name, err)
	}
	return rows, nil
}

// ColumnIndex converts a spreadsheet column letter to a 0-based index.
// Anything unparseable falls back to column B, the conventional StudentID
// column.
func ColumnIndex(letter string) int {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return 1
	}
	return int(letter[0] - 'A')
}
