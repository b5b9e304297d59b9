package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clinicops/roster/internal/config"
	"github.com/clinicops/roster/internal/roster"
)

type memStore struct {
	records []*roster.Record
	fail    error
}

func (m *memStore) Create(ctx context.Context, rec *roster.Record, actorID string) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	m.records = append(m.records, rec)
	return fmt.Sprintf("rec-%d", len(m.records)), nil
}

func (m *memStore) List(ctx context.Context) ([]*roster.Record, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return m.records, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Import.MaxFileSize = 1 << 20
	cfg.Import.MaxWait = 100 * time.Millisecond
	cfg.Import.DefaultStatus = "active"
	return cfg
}

func testServer(store *memStore) *Server {
	return NewServer(roster.NewService(store, testConfig()), testConfig())
}

func multipartBody(t *testing.T, csvContent string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "upload.csv")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write([]byte(csvContent)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

// ----------------------------------------------------------------------------
// Import endpoint
// ----------------------------------------------------------------------------

func TestImportEndpoint(t *testing.T) {
	store := &memStore{}
	srv := testServer(store)

	body, contentType := multipartBody(t, "Name,Email\nJohn Doe,john@example.com\n,\n")
	req := httptest.NewRequest(http.MethodPost, "/api/roster/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Actor-ID", "actor-1")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var report roster.Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Rows != 2 || report.Created != 1 || report.Rejected != 1 {
		t.Errorf("report = %d/%d/%d, want rows 2 created 1 rejected 1",
			report.Rows, report.Created, report.Rejected)
	}
	if len(store.records) != 1 {
		t.Errorf("store has %d records, want 1", len(store.records))
	}
}

func TestImportEndpoint_MissingActor(t *testing.T) {
	srv := testServer(&memStore{})

	body, contentType := multipartBody(t, "Name\nJohn Doe\n")
	req := httptest.NewRequest(http.MethodPost, "/api/roster/import", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no acting user") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestImportEndpoint_NoFile(t *testing.T) {
	srv := testServer(&memStore{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("unrelated", "value")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/roster/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Actor-ID", "actor-1")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestImportEndpoint_EmptyFile(t *testing.T) {
	srv := testServer(&memStore{})

	body, contentType := multipartBody(t, "")
	req := httptest.NewRequest(http.MethodPost, "/api/roster/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Actor-ID", "actor-1")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no header line") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

// ----------------------------------------------------------------------------
// Export endpoint
// ----------------------------------------------------------------------------

func TestExportEndpoint(t *testing.T) {
	store := &memStore{}
	srv := testServer(store)

	// Seed through the import endpoint so the records carry real state.
	body, contentType := multipartBody(t, "First Name,Last Name,Email\nAna,Lee,ana@example.com\n")
	req := httptest.NewRequest(http.MethodPost, "/api/roster/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Actor-ID", "actor-1")
	srv.Router().ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/roster/export", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "roster_export_") {
		t.Errorf("Content-Disposition = %q", got)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("export has %d lines, want header plus one row", len(lines))
	}
	if !strings.Contains(lines[1], "ana@example.com") {
		t.Errorf("export row = %q", lines[1])
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(&memStore{})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var health map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health["status"] != "ok" {
		t.Errorf("status = %v", health["status"])
	}
	if active, ok := health["import_active"].(bool); !ok || active {
		t.Errorf("import_active = %v, want false", health["import_active"])
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := testServer(&memStore{})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}
