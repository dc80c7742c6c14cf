package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testGrid() Grid {
	return Grid{
		Cols:    2,
		Rows:    4,
		CardW:   3.5 * PointsPerInch,
		CardH:   2.25 * PointsPerInch,
		MarginX: 0.5 * PointsPerInch,
		MarginY: 0.5 * PointsPerInch,
		GapX:    0.3 * PointsPerInch,
		GapY:    0.2 * PointsPerInch,
		PageW:   LetterWidth,
		PageH:   LetterHeight,
	}
}

func TestPlacementGridWalk(t *testing.T) {
	g := testGrid()

	tests := []struct {
		name     string
		i        int
		wantPage int
		wantCol  int
		wantRow  int
	}{
		{name: "first card top-left", i: 0, wantPage: 0, wantCol: 0, wantRow: 0},
		{name: "second card second column", i: 1, wantPage: 0, wantCol: 1, wantRow: 0},
		{name: "third card wraps to second row", i: 2, wantPage: 0, wantCol: 0, wantRow: 1},
		{name: "last card of first page", i: 7, wantPage: 0, wantCol: 1, wantRow: 3},
		{name: "ninth card starts second page", i: 8, wantPage: 1, wantCol: 0, wantRow: 0},
		{name: "deep into third page", i: 21, wantPage: 2, wantCol: 1, wantRow: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Placement(tt.i)
			if got.Page != tt.wantPage {
				t.Errorf("Placement(%d).Page = %d, want %d", tt.i, got.Page, tt.wantPage)
			}
			wantX := g.MarginX + float64(tt.wantCol)*(g.CardW+g.GapX)
			wantY := g.PageH - g.MarginY - float64(tt.wantRow+1)*g.CardH - float64(tt.wantRow)*g.GapY
			if got.X != wantX {
				t.Errorf("Placement(%d).X = %v, want %v", tt.i, got.X, wantX)
			}
			if got.Y != wantY {
				t.Errorf("Placement(%d).Y = %v, want %v", tt.i, got.Y, wantY)
			}
		})
	}
}

func TestPlacementEveryCardPlacedOnce(t *testing.T) {
	g := testGrid()
	seen := make(map[Placement]int)
	for i := 0; i < 40; i++ {
		seen[g.Placement(i)]++
	}
	if len(seen) != 40 {
		t.Errorf("expected 40 distinct placements, got %d", len(seen))
	}
	for p, n := range seen {
		if n != 1 {
			t.Errorf("placement %+v used %d times", p, n)
		}
	}
}

func TestPages(t *testing.T) {
	g := testGrid()

	tests := []struct {
		name  string
		cards int
		want  int
	}{
		{name: "no cards no pages", cards: 0, want: 0},
		{name: "single card", cards: 1, want: 1},
		{name: "exactly one page", cards: 8, want: 1},
		{name: "one over a page boundary", cards: 9, want: 2},
		{name: "partial last page still counts", cards: 15, want: 2},
		{name: "three full pages", cards: 24, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Pages(tt.cards); got != tt.want {
				t.Errorf("Pages(%d) = %d, want %d", tt.cards, got, tt.want)
			}
		})
	}
}

func TestFirstPagePlacements(t *testing.T) {
	g := testGrid()

	var got []Placement
	for i := 0; i < 4; i++ {
		got = append(got, g.Placement(i))
	}
	want := []Placement{
		{Page: 0, X: 36, Y: 594},
		{Page: 0, X: 309.6, Y: 594},
		{Page: 0, X: 36, Y: 417.6},
		{Page: 0, X: 309.6, Y: 417.6},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b Placement) bool {
		approx := func(x, y float64) bool {
			d := x - y
			return d < 1e-9 && d > -1e-9
		}
		return a.Page == b.Page && approx(a.X, b.X) && approx(a.Y, b.Y)
	})); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
}
