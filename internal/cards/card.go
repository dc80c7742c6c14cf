// Package cards renders printable wallet ID cards and handles batch CSV
// import for the card generator.
package cards

import "mcp-tools/internal/layout"

// Card is one student's card, built from the form or one CSV row.
// It is consumed once to render a card and never persisted.
type Card struct {
	ID       string
	First    string
	Last     string
	GradYear string
}

// Renderer places cards on pages. The layout math lives in Compose so the
// drawing backend stays swappable (and the geometry testable).
type Renderer interface {
	// Place draws one card with its bottom-left corner at (x, y).
	Place(card Card, x, y float64) error
	// FinishPage closes the current page.
	FinishPage()
	// Save returns the finished document.
	Save() ([]byte, error)
}

// Compose walks the card sequence through the grid: a page boundary is
// crossed every Cols*Rows cards, and a trailing partial page is still
// flushed. Every card is placed exactly once, in input order.
func Compose(r Renderer, g layout.Grid, cards []Card) error {
	perPage := g.PerPage()
	for i, card := range cards {
		p := g.Placement(i)
		if err := r.Place(card, p.X, p.Y); err != nil {
			return err
		}
		if (i+1)%perPage == 0 {
			r.FinishPage()
		}
	}
	if len(cards)%perPage != 0 {
		r.FinishPage()
	}
	return nil
}
