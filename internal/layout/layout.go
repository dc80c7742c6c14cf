// Package layout computes where each wallet card lands on the printed sheet.
// Coordinates are PDF points (72 per inch) with the origin at the page's
// bottom-left corner; the drawing backend converts as needed.
package layout

import "mcp-tools/internal/config"

const PointsPerInch = 72.0

// US Letter, in points.
const (
	LetterWidth  = 8.5 * PointsPerInch
	LetterHeight = 11.0 * PointsPerInch
)

// Grid describes the fixed card-sheet geometry. Rows are numbered top-down:
// card 0 sits at the top-left of page 0.
type Grid struct {
	Cols int
	Rows int

	CardW float64
	CardH float64

	MarginX float64 // left page margin
	MarginY float64 // top page margin

	GapX float64 // horizontal gap between columns
	GapY float64 // vertical gap between rows

	PageW float64
	PageH float64
}

// Placement is the bottom-left corner of one card.
type Placement struct {
	Page int
	X    float64
	Y    float64
}

// FromConfig builds the grid from the configured inch measurements on a
// Letter page.
func FromConfig(cfg *config.Config) Grid {
	return Grid{
		Cols:    cfg.GridCols,
		Rows:    cfg.GridRows,
		CardW:   cfg.CardWidthIn * PointsPerInch,
		CardH:   cfg.CardHeightIn * PointsPerInch,
		MarginX: cfg.PageMarginXIn * PointsPerInch,
		MarginY: cfg.PageMarginYIn * PointsPerInch,
		GapX:    cfg.CardGapXIn * PointsPerInch,
		GapY:    cfg.CardGapYIn * PointsPerInch,
		PageW:   LetterWidth,
		PageH:   LetterHeight,
	}
}

// PerPage returns how many cards fit on one page.
func (g Grid) PerPage() int {
	return g.Cols * g.Rows
}

// Placement returns where the i-th card (0-based) lands. Column is i mod
// Cols, row is (i div Cols) mod Rows, and a page boundary is crossed every
// Cols*Rows cards.
func (g Grid) Placement(i int) Placement {
	col := i % g.Cols
	row := (i / g.Cols) % g.Rows
	page := i / g.PerPage()

	x := g.MarginX + float64(col)*(g.CardW+g.GapX)
	y := g.PageH - g.MarginY - float64(row+1)*g.CardH - float64(row)*g.GapY

	return Placement{Page: page, X: x, Y: y}
}

// Pages returns how many pages n cards occupy. A trailing partial page
// counts as a full page.
func (g Grid) Pages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + g.PerPage() - 1) / g.PerPage()
}
