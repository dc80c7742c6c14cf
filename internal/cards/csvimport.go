package cards

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"mcp-tools/internal/idgen"
)

// Required CSV headers, matched case-insensitively.
const (
	headerStudentID = "Student ID"
	headerFirstName = "First Name"
	headerLastName  = "Last Name"
	headerGradYear  = "Grad Year"
)

// Table is an uploaded CSV with its header row. Column order is preserved
// so the exported file mirrors the source.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Columns holds the resolved indices of the known columns. Grad is -1 when
// the optional Grad Year column is absent.
type Columns struct {
	ID    int
	First int
	Last  int
	Grad  int
}

// MissingColumnsError reports exactly which required headers are absent.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required headers: %s", strings.Join(e.Missing, ", "))
}

// ParseTable reads the whole CSV. Short rows are padded to the header width
// so column lookups never go out of range.
func ParseTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	t := &Table{Headers: records[0]}
	for _, record := range records[1:] {
		row := make([]string, len(t.Headers))
		copy(row, record)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// RequireColumns resolves the required columns case-insensitively. It fails
// before any row is processed, listing exactly the absent headers.
func (t *Table) RequireColumns() (Columns, error) {
	byName := make(map[string]int)
	for i, h := range t.Headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, exists := byName[key]; !exists {
			byName[key] = i
		}
	}

	cols := Columns{ID: -1, First: -1, Last: -1, Grad: -1}
	var missing []string
	for _, req := range []struct {
		name string
		dst  *int
	}{
		{headerStudentID, &cols.ID},
		{headerFirstName, &cols.First},
		{headerLastName, &cols.Last},
	} {
		if i, ok := byName[strings.ToLower(req.name)]; ok {
			*req.dst = i
		} else {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return Columns{}, &MissingColumnsError{Missing: missing}
	}

	if i, ok := byName[strings.ToLower(headerGradYear)]; ok {
		cols.Grad = i
	}
	return cols, nil
}

// BatchOptions controls auto-assignment of missing student IDs.
type BatchOptions struct {
	AutoAssign bool
	Prefix     string
	YearToken  string
	StartSeq   int
}

// BatchResult is the outcome of one import pass.
type BatchResult struct {
	Cards   []Card
	Skipped int
}

// BuildCards turns eligible rows into cards. A row is eligible when ID,
// first and last name are non-empty after trimming; auto-assigned IDs are
// written back into the row so the exported table reflects them. Ineligible
// rows are counted as skipped but stay in the table untouched.
func BuildCards(t *Table, cols Columns, opts BatchOptions) (BatchResult, error) {
	var taken []string
	for _, row := range t.Rows {
		if id := strings.TrimSpace(row[cols.ID]); id != "" {
			taken = append(taken, id)
		}
	}
	stream := idgen.NewStream(opts.Prefix, opts.YearToken, opts.StartSeq, taken)

	var result BatchResult
	for _, row := range t.Rows {
		id := strings.TrimSpace(row[cols.ID])
		first := strings.TrimSpace(row[cols.First])
		last := strings.TrimSpace(row[cols.Last])
		grad := ""
		if cols.Grad >= 0 {
			grad = strings.TrimSpace(row[cols.Grad])
		}

		if id == "" && opts.AutoAssign {
			next, err := stream.Next()
			if err != nil {
				return BatchResult{}, fmt.Errorf("failed to auto-assign ID: %w", err)
			}
			id = next
			row[cols.ID] = id
		}

		if id != "" && first != "" && last != "" {
			result.Cards = append(result.Cards, Card{ID: id, First: first, Last: last, GradYear: grad})
		} else {
			result.Skipped++
		}
	}
	return result, nil
}

// WriteCSV echoes the table, including any written-back IDs, in the source
// column order.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
