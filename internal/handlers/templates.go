package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"

	"mcp-tools/internal/config"
	"mcp-tools/internal/views"
)

var (
	templates     *template.Template
	templatesOnce sync.Once
	cfg           *config.Config
)

// SetConfig sets the config for debug logging and template defaults
func SetConfig(c *config.Config) {
	cfg = c
}

// InitTemplates initializes templates at startup so parse errors surface
// immediately instead of on the first request.
func InitTemplates() {
	initTemplates()
}

func initTemplates() {
	templatesOnce.Do(func() {
		tmpl, err := template.New("").ParseFS(views.TemplatesFS, "*.html")
		if err != nil {
			log.Printf("ERROR: Failed to parse templates: %v", err)
			panic(fmt.Sprintf("Failed to parse templates: %v", err))
		}
		templates = tmpl
		if cfg != nil {
			for _, t := range templates.Templates() {
				cfg.Debugf("TEMPLATE LOADED: %s", t.Name())
			}
		}
	})
}

// contentTemplateMap maps template filenames to their content template names
var contentTemplateMap = map[string]string{
	"attendance.html":   "attendance_content",
	"cards.html":        "cards_content",
	"cards_batch.html":  "batch_content",
	"batch_result.html": "batch_result_content",
}

func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	initTemplates()

	contentTemplateName, exists := contentTemplateMap[name]
	if !exists {
		log.Printf("ERROR: No content template mapping for %s", name)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = make(map[string]interface{})
	}
	data["ContentTemplate"] = contentTemplateName
	if _, ok := data["OrgName"]; !ok && cfg != nil {
		data["OrgName"] = cfg.OrgName
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = data["OrgName"]
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("ERROR: Template execute error: %v", err)
		http.Error(w, fmt.Sprintf("Template execute error: %v", err), http.StatusInternalServerError)
		return
	}
	if cfg != nil {
		cfg.Debugf("Template %s rendered", name)
	}
}
