package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func multipartCSV(t *testing.T, csvContent string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("csv", "students.csv")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := fw.Write([]byte(csvContent)); err != nil {
		t.Fatalf("write CSV part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func TestBatchUploadMissingHeaders(t *testing.T) {
	cfg := testConfig()
	SetConfig(cfg)
	h := NewBatchHandler(cfg)

	body, contentType := multipartCSV(t, "First Name,Last Name\nAnn,Lee\n")
	req := httptest.NewRequest(http.MethodPost, "/cards/batch", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (form re-rendered with error)", rec.Code)
	}
	got := rec.Body.String()
	if !strings.Contains(got, "Missing required headers: Student ID") {
		t.Errorf("expected missing-header message naming Student ID, body:\n%s", got)
	}
	if strings.Contains(got, "Missing required headers: Student ID, First Name") {
		t.Error("error must list only the absent headers")
	}
}

func TestBatchUploadWithoutFile(t *testing.T) {
	cfg := testConfig()
	SetConfig(cfg)
	h := NewBatchHandler(cfg)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/cards/batch", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if !strings.Contains(rec.Body.String(), "Please upload a CSV file.") {
		t.Error("expected a missing-file message")
	}
}

func TestBatchDownloadUnknownRun(t *testing.T) {
	cfg := testConfig()
	SetConfig(cfg)
	h := NewBatchHandler(cfg)

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "unknown run ID", path: "/cards/batch/2f6c8f9e-0000-4000-8000-000000000000/pdf", want: http.StatusNotFound},
		{name: "malformed run ID", path: "/cards/batch/not-a-uuid/pdf", want: http.StatusNotFound},
		{name: "unknown artifact kind", path: "/cards/batch/2f6c8f9e-0000-4000-8000-000000000000/zip", want: http.StatusNotFound},
		{name: "missing artifact segment", path: "/cards/batch/2f6c8f9e-0000-4000-8000-000000000000", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			h.Download(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
