package handlers

import (
	"net/http"
	"strings"

	"mcp-tools/internal/config"
	"mcp-tools/internal/sheets"
)

type AttendanceHandler struct {
	cfg *config.Config
	svc *sheets.Service
}

func NewAttendanceHandler(cfg *config.Config, svc *sheets.Service) *AttendanceHandler {
	return &AttendanceHandler{cfg: cfg, svc: svc}
}

// Lookup renders the attendance form; with a student_id query it also
// shows the seminar count, the attended list, and the full overview table.
func (h *AttendanceHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title":     "Attendance Checker",
		"StudentID": "",
	}

	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		h.cfg.Debugf("attendance snapshot failed: %v", err)
		data["Error"] = "Could not load attendance data. Please try again shortly."
		renderTemplate(w, r, "attendance.html", data)
		return
	}
	data["AcademicYear"] = snap.AcademicYear

	studentID := strings.TrimSpace(r.URL.Query().Get("student_id"))
	data["StudentID"] = studentID
	if studentID != "" {
		count, present := snap.Lookup(studentID)
		data["Queried"] = true
		data["Count"] = count
		data["Present"] = present
		data["Overview"] = snap.Overview(studentID)
	}

	renderTemplate(w, r, "attendance.html", data)
}
