package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"mcp-tools/internal/cards"
	"mcp-tools/internal/config"
	"mcp-tools/internal/layout"
	"mcp-tools/internal/util"
)

type BatchHandler struct {
	cfg  *config.Config
	grid layout.Grid
	runs *cards.RunStore
}

func NewBatchHandler(cfg *config.Config) *BatchHandler {
	return &BatchHandler{
		cfg:  cfg,
		grid: layout.FromConfig(cfg),
		runs: cards.NewRunStore(cfg.RunTTL),
	}
}

func (h *BatchHandler) formData() map[string]interface{} {
	return map[string]interface{}{
		"Title":     "Batch Card Generator",
		"Prefix":    h.cfg.IDPrefix,
		"YearToken": util.TwoDigitYear(time.Now()),
		"StartSeq":  h.cfg.StartSeq,
	}
}

// Form renders the CSV upload page.
func (h *BatchHandler) Form(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "cards_batch.html", h.formData())
}

// Upload validates the CSV, allocates missing IDs, renders the card sheet
// PDF and the updated CSV, and stores both for download.
func (h *BatchHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.renderError(w, r, "Could not read the submitted form.")
		return
	}

	file, _, err := r.FormFile("csv")
	if err != nil {
		h.renderError(w, r, "Please upload a CSV file.")
		return
	}
	defer file.Close()

	table, err := cards.ParseTable(file)
	if err != nil {
		h.renderError(w, r, "Could not read the CSV file.")
		return
	}

	columns, err := table.RequireColumns()
	if err != nil {
		var missingErr *cards.MissingColumnsError
		if errors.As(err, &missingErr) {
			h.renderError(w, r, "Missing required headers: "+strings.Join(missingErr.Missing, ", "))
		} else {
			h.renderError(w, r, err.Error())
		}
		return
	}

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

	result, err := cards.BuildCards(table, columns, cards.BatchOptions{
		AutoAssign: r.FormValue("auto_assign") != "",
		Prefix:     prefix,
		YearToken:  yearToken,
		StartSeq:   startSeq,
	})
	if err != nil {
		h.renderError(w, r, err.Error())
		return
	}

	logo, err := readLogo(r)
	if err != nil {
		h.renderError(w, r, "The logo must be a valid PNG image.")
		return
	}

	pdf, err := renderCardPDF(h.cfg, h.grid, logo, result.Cards)
	if err != nil {
		h.cfg.Debugf("batch render failed: %v", err)
		h.renderError(w, r, fmt.Sprintf("Card generation failed: %v", err))
		return
	}

	var csvOut bytes.Buffer
	if err := table.WriteCSV(&csvOut); err != nil {
		h.renderError(w, r, "Could not write the updated CSV.")
		return
	}

	run := &cards.Run{
		ID:        uuid.New(),
		PDF:       pdf,
		CSV:       csvOut.Bytes(),
		CardCount: len(result.Cards),
		Skipped:   result.Skipped,
	}
	h.runs.Put(run)
	h.cfg.Debugf("batch run %s: %d cards, %d skipped", run.ID, run.CardCount, run.Skipped)

	data := h.formData()
	data["Title"] = "Batch Result"
	data["RunID"] = run.ID.String()
	data["CardCount"] = run.CardCount
	if run.Skipped > 0 {
		data["Warning"] = fmt.Sprintf("%d row(s) missing id/first/last were skipped for the PDF, but kept in the updated CSV.", run.Skipped)
	}
	renderTemplate(w, r, "batch_result.html", data)
}

// Download serves a stored run artifact. The path is
// /cards/batch/{runID}/pdf or /cards/batch/{runID}/csv.
func (h *BatchHandler) Download(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/cards/batch/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	runID, err := uuid.Parse(parts[0])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	run, ok := h.runs.Get(runID)
	if !ok {
		http.Error(w, "This batch has expired. Please upload the CSV again.", http.StatusNotFound)
		return
	}

	switch parts[1] {
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="MCP_Cards.pdf"`)
		w.Write(run.PDF)
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="Students_With_IDs.csv"`)
		w.Write(run.CSV)
	default:
		http.NotFound(w, r)
	}
}

func (h *BatchHandler) renderError(w http.ResponseWriter, r *http.Request, msg string) {
	data := h.formData()
	data["Error"] = msg
	renderTemplate(w, r, "cards_batch.html", data)
}
