package handlers

import (
	"fmt"
	"image"
	_ "image/png"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mcp-tools/internal/cards"
	"mcp-tools/internal/config"
	"mcp-tools/internal/idgen"
	"mcp-tools/internal/layout"
	"mcp-tools/internal/util"
)

// maxUploadBytes bounds multipart form parsing for the logo and CSV uploads.
const maxUploadBytes = 8 << 20

type CardsHandler struct {
	cfg  *config.Config
	grid layout.Grid
}

func NewCardsHandler(cfg *config.Config) *CardsHandler {
	return &CardsHandler{cfg: cfg, grid: layout.FromConfig(cfg)}
}

func (h *CardsHandler) formData() map[string]interface{} {
	return map[string]interface{}{
		"Title":     "Card Generator",
		"First":     "",
		"Last":      "",
		"IDMode":    "type",
		"TypedID":   "",
		"GradYear":  "",
		"Prefix":    h.cfg.IDPrefix,
		"YearToken": util.TwoDigitYear(time.Now()),
		"StartSeq":  h.cfg.StartSeq,
	}
}

// Form renders the on-demand single-card page.
func (h *CardsHandler) Form(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "cards.html", h.formData())
}

// Generate produces a one-card PDF from the form and streams it as a
// download.
func (h *CardsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.renderError(w, r, "Could not read the submitted form.")
		return
	}

	first := strings.TrimSpace(r.FormValue("first"))
	last := strings.TrimSpace(r.FormValue("last"))
	gradYear := strings.TrimSpace(r.FormValue("grad_year"))
	idMode := r.FormValue("id_mode")

	var studentID string
	if idMode == "auto" {
		prefix := strings.TrimSpace(r.FormValue("prefix"))
		if prefix == "" {
			prefix = h.cfg.IDPrefix
		}
		yearToken := util.YearToken(r.FormValue("year"), time.Now())
		if err := util.ValidateYearToken(yearToken); err != nil {
			h.renderError(w, r, "Two-digit year must be exactly two digits.")
			return
		}
		startSeq := h.cfg.StartSeq
		if v, err := strconv.Atoi(r.FormValue("start_seq")); err == nil && v > 0 {
			startSeq = v
		}
		// A single on-demand card has no master list to collide with.
		id, err := idgen.NewStream(prefix, yearToken, startSeq, nil).Next()
		if err != nil {
			h.renderError(w, r, "Could not allocate a student ID.")
			return
		}
		studentID = id
	} else {
		studentID = strings.TrimSpace(r.FormValue("student_id"))
	}

	if first == "" || last == "" || studentID == "" {
		h.renderError(w, r, "First, Last, and Student ID are required.")
		return
	}

	logo, err := readLogo(r)
	if err != nil {
		h.renderError(w, r, "The logo must be a valid PNG image.")
		return
	}

	pdf, err := renderCardPDF(h.cfg, h.grid, logo, []cards.Card{
		{ID: studentID, First: first, Last: last, GradYear: gradYear},
	})
	if err != nil {
		h.cfg.Debugf("card render failed: %v", err)
		h.renderError(w, r, fmt.Sprintf("Card generation failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "Card_"+studentID+".pdf"))
	w.Write(pdf)
}

func (h *CardsHandler) renderError(w http.ResponseWriter, r *http.Request, msg string) {
	data := h.formData()
	data["Error"] = msg
	renderTemplate(w, r, "cards.html", data)
}

// readLogo decodes the optional PNG logo upload. A missing file is not an
// error; a broken image is.
func readLogo(r *http.Request) (image.Image, error) {
	file, _, err := r.FormFile("logo")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo: %w", err)
	}
	return img, nil
}

// renderCardPDF runs the layout engine over a gopdf renderer. A barcode
// encoding failure aborts the whole run, no partial-page recovery.
func renderCardPDF(cfg *config.Config, grid layout.Grid, logo image.Image, cardList []cards.Card) ([]byte, error) {
	renderer, err := cards.NewPDFRenderer(grid, cards.PDFOptions{
		OrgName:   cfg.OrgName,
		FontPath:  cfg.CardFontPath,
		Logo:      logo,
		IncludeQR: cfg.CardQR,
	})
	if err != nil {
		return nil, err
	}
	if err := cards.Compose(renderer, grid, cardList); err != nil {
		return nil, err
	}
	return renderer.Save()
}
