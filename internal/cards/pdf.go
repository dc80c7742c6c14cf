package cards

import (
	"fmt"
	"image"
	"strings"

	"github.com/signintech/gopdf"

	"mcp-tools/internal/layout"
)

const fontName = "card"

const inch = layout.PointsPerInch

// PDFOptions configures the gopdf-backed renderer.
type PDFOptions struct {
	OrgName   string
	FontPath  string
	Logo      image.Image // optional, drawn top-right
	IncludeQR bool
}

// PDFRenderer draws cards onto a Letter-sized PDF. Compose hands it
// bottom-left coordinates; gopdf works top-down, so Place converts.
type PDFRenderer struct {
	pdf      *gopdf.GoPdf
	grid     layout.Grid
	opts     PDFOptions
	pageDone bool
}

func NewPDFRenderer(grid layout.Grid, opts PDFOptions) (*PDFRenderer, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: grid.PageW, H: grid.PageH}})
	if err := pdf.AddTTFFont(fontName, opts.FontPath); err != nil {
		return nil, fmt.Errorf("failed to load card font %s: %w", opts.FontPath, err)
	}
	pdf.AddPage()
	return &PDFRenderer{pdf: pdf, grid: grid, opts: opts}, nil
}

func (r *PDFRenderer) Place(card Card, x, y float64) error {
	// FinishPage only marks the page closed; the next page is opened
	// lazily here so a flushed final page never leaves a blank one.
	if r.pageDone {
		r.pdf.AddPage()
		r.pageDone = false
	}

	w, h := r.grid.CardW, r.grid.CardH
	top := r.grid.PageH - y - h

	// Border
	r.pdf.SetLineWidth(1)
	if err := r.pdf.Rectangle(x, top, x+w, top+h, "D", 10, 10); err != nil {
		return fmt.Errorf("failed to draw card border: %w", err)
	}

	// Text block (top-left)
	name := strings.TrimSpace(card.First + " " + card.Last)
	if err := r.text(13, x+0.20*inch, top+0.20*inch, name); err != nil {
		return err
	}
	if err := r.text(10, x+0.20*inch, top+0.45*inch, "Student ID: "+card.ID); err != nil {
		return err
	}
	if card.GradYear != "" {
		if err := r.text(10, x+0.20*inch, top+0.62*inch, "Grad Year: "+card.GradYear); err != nil {
			return err
		}
	}

	// Org label, right-aligned near the bottom edge
	if err := r.pdf.SetFont(fontName, "", 9); err != nil {
		return fmt.Errorf("failed to set font: %w", err)
	}
	labelW, err := r.pdf.MeasureTextWidth(r.opts.OrgName)
	if err != nil {
		return fmt.Errorf("failed to measure org label: %w", err)
	}
	r.pdf.SetXY(x+w-0.12*inch-labelW, top+h-0.27*inch)
	if err := r.pdf.Cell(nil, r.opts.OrgName); err != nil {
		return fmt.Errorf("failed to draw org label: %w", err)
	}

	// Code128 barcode, large and centered near the bottom. When the QR
	// variant is on, the barcode yields some width to the QR on the right.
	bcImg, err := BarcodeImage(card.ID)
	if err != nil {
		return err
	}
	bcW := w - 0.40*inch
	if r.opts.IncludeQR {
		bcW = w - 1.10*inch
	}
	bcRect := &gopdf.Rect{W: bcW, H: 0.80 * inch}
	if err := r.pdf.ImageFrom(bcImg, x+0.20*inch, top+h-1.20*inch, bcRect); err != nil {
		return fmt.Errorf("failed to place barcode: %w", err)
	}

	if r.opts.IncludeQR {
		qrImg, err := QRImage(card.ID)
		if err != nil {
			return err
		}
		qrRect := &gopdf.Rect{W: 0.60 * inch, H: 0.60 * inch}
		if err := r.pdf.ImageFrom(qrImg, x+w-0.80*inch, top+h-1.10*inch, qrRect); err != nil {
			return fmt.Errorf("failed to place QR code: %w", err)
		}
	}

	// Optional logo (top-right)
	if r.opts.Logo != nil {
		logoRect := &gopdf.Rect{W: 0.80 * inch, H: 0.80 * inch}
		if err := r.pdf.ImageFrom(r.opts.Logo, x+w-0.85*inch, top+0.05*inch, logoRect); err != nil {
			return fmt.Errorf("failed to place logo: %w", err)
		}
	}

	return nil
}

func (r *PDFRenderer) FinishPage() {
	r.pageDone = true
}

func (r *PDFRenderer) Save() ([]byte, error) {
	return r.pdf.GetBytesPdf(), nil
}

func (r *PDFRenderer) text(size float64, x, y float64, s string) error {
	if err := r.pdf.SetFont(fontName, "", size); err != nil {
		return fmt.Errorf("failed to set font: %w", err)
	}
	r.pdf.SetXY(x, y)
	if err := r.pdf.Cell(nil, s); err != nil {
		return fmt.Errorf("failed to draw text %q: %w", s, err)
	}
	return nil
}
