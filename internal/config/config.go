package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port    string
	Debug   bool
	OrgName string

	// Attendance spreadsheet
	SpreadsheetID string
	SheetCSVURL   string // URL template with two %s placeholders: spreadsheet ID, tab name
	SeminarTabs   []string
	StudentIDCol  string
	CacheTTL      time.Duration

	// Card generation
	IDPrefix     string
	StartSeq     int
	CardFontPath string
	CardQR       bool
	RunTTL       time.Duration

	// Card sheet geometry (inches)
	GridCols      int
	GridRows      int
	CardWidthIn   float64
	CardHeightIn  float64
	PageMarginXIn float64
	PageMarginYIn float64
	CardGapXIn    float64
	CardGapYIn    float64
}

func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "3000"),
		Debug:   getEnvBool("DEBUG", false),
		OrgName: getEnv("ORG_NAME", "Medical Certificate Program"),

		SpreadsheetID: getEnv("SPREADSHEET_ID", ""),
		SheetCSVURL:   getEnv("SHEET_CSV_URL", "https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s"),
		SeminarTabs:   getEnvList("SEMINAR_TABS", nil),
		StudentIDCol:  getEnv("STUDENT_ID_COL", "B"),
		CacheTTL:      getEnvDuration("CACHE_TTL", 2*time.Minute),

		IDPrefix:     getEnv("ID_PREFIX", "MCP"),
		StartSeq:     getEnvInt("START_SEQ", 1),
		CardFontPath: getEnv("CARD_FONT_PATH", "web/static/fonts/Roboto-Regular.ttf"),
		CardQR:       getEnvBool("CARD_QR", false),
		RunTTL:       getEnvDuration("RUN_TTL", 15*time.Minute),

		GridCols:      getEnvInt("GRID_COLS", 2),
		GridRows:      getEnvInt("GRID_ROWS", 4),
		CardWidthIn:   getEnvFloat("CARD_WIDTH_IN", 3.5),
		CardHeightIn:  getEnvFloat("CARD_HEIGHT_IN", 2.25),
		PageMarginXIn: getEnvFloat("PAGE_MARGIN_X_IN", 0.5),
		PageMarginYIn: getEnvFloat("PAGE_MARGIN_Y_IN", 0.5),
		CardGapXIn:    getEnvFloat("CARD_GAP_X_IN", 0.3),
		CardGapYIn:    getEnvFloat("CARD_GAP_Y_IN", 0.2),
	}
}

// Debugf logs a formatted message only when DEBUG is enabled
func (c *Config) Debugf(format string, v ...interface{}) {
	if c.Debug {
		log.Printf("[DEBUG] "+format, v...)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvList parses a comma-separated value, trimming whitespace and dropping
// empty entries. Returns the default when the variable is unset or empty.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
