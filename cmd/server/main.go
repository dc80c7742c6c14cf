package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"mcp-tools/internal/config"
	"mcp-tools/internal/handlers"
	"mcp-tools/internal/middleware"
	"mcp-tools/internal/sheets"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg := config.Load()

	// Initialize handlers
	handlers.SetConfig(cfg)

	// Initialize templates early to catch any errors at startup
	handlers.InitTemplates()

	attendanceSvc := sheets.NewService(
		sheets.NewCSVFetcher(cfg),
		cfg.SeminarTabs,
		cfg.StudentIDCol,
		cfg.CacheTTL,
	)
	attendanceHandler := handlers.NewAttendanceHandler(cfg, attendanceSvc)
	cardsHandler := handlers.NewCardsHandler(cfg)
	batchHandler := handlers.NewBatchHandler(cfg)

	// Setup routes
	mux := http.NewServeMux()

	// Static files - use absolute path (must be first)
	workDir, _ := os.Getwd()
	staticDir := filepath.Join(workDir, "web", "static")
	fs := http.FileServer(http.Dir(staticDir))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))
	cfg.Debugf("ROUTE REGISTERED: /static/ -> FileServer")

	// Attendance checker
	mux.HandleFunc("/attendance", middleware.RequestLog(cfg, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/attendance" {
			http.NotFound(w, r)
			return
		}
		if r.Method == http.MethodGet {
			attendanceHandler.Lookup(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))
	cfg.Debugf("ROUTE REGISTERED: /attendance -> attendanceHandler.Lookup")

	// On-demand card generator
	mux.HandleFunc("/cards", middleware.RequestLog(cfg, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards" {
			http.NotFound(w, r)
			return
		}
		if r.Method == http.MethodGet {
			cardsHandler.Form(w, r)
		} else if r.Method == http.MethodPost {
			cardsHandler.Generate(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))
	cfg.Debugf("ROUTE REGISTERED: /cards -> cardsHandler (Form/Generate)")

	// Batch card generator - exact route BEFORE the download catch-all
	mux.HandleFunc("/cards/batch", middleware.RequestLog(cfg, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/batch" {
			http.NotFound(w, r)
			return
		}
		if r.Method == http.MethodGet {
			batchHandler.Form(w, r)
		} else if r.Method == http.MethodPost {
			batchHandler.Upload(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))
	cfg.Debugf("ROUTE REGISTERED: /cards/batch -> batchHandler (Form/Upload)")

	// /cards/batch/{runID}/pdf and /cards/batch/{runID}/csv - handle manually
	// (Go stdlib mux doesn't support {id})
	mux.HandleFunc("/cards/batch/", middleware.RequestLog(cfg, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/cards/batch/") || r.URL.Path == "/cards/batch/" {
			http.NotFound(w, r)
			return
		}
		if r.Method == http.MethodGet {
			batchHandler.Download(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))
	cfg.Debugf("ROUTE REGISTERED: /cards/batch/{runID}/{pdf|csv} -> batchHandler.Download")

	// Root redirect (register last)
	mux.HandleFunc("/", middleware.RequestLog(cfg, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/attendance", http.StatusFound)
	}))
	cfg.Debugf("ROUTE REGISTERED: / -> redirect to /attendance")

	// Start server
	port := cfg.Port
	if port == "" {
		port = "3000"
	}

	log.Printf("Server starting on http://localhost:%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
