package middleware

import (
	"net/http"

	"mcp-tools/internal/config"
)

// RequestLog emits a concise per-request debug line when DEBUG is enabled.
func RequestLog(cfg *config.Config, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Debugf("REQUEST: %s %s", r.Method, r.URL.Path)
		next(w, r)
	}
}
