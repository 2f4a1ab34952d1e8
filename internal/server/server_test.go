package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/veristat/veristat/internal/model"
	"github.com/veristat/veristat/internal/pipeline"
)

// stubRunner records the last invocation and returns a canned report
type stubRunner struct {
	text   string
	opts   pipeline.Options
	report *model.Report
}

func (r *stubRunner) Run(ctx context.Context, text string, opts pipeline.Options) *model.Report {
	r.text = text
	r.opts = opts
	if r.report != nil {
		return r.report
	}
	return &model.Report{Mode: model.ModePlainText, OverallCredibility: model.CredibilityHigh}
}

func newTestServer(runner *stubRunner) *Server {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = false
	return New(runner, cfg)
}

func postVerify(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(&stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "veristat" {
		t.Errorf("body = %v", body)
	}
}

func TestVerify(t *testing.T) {
	runner := &stubRunner{}
	s := newTestServer(runner)

	rec := postVerify(t, s, `{"text": "台北市今天宣布新政策"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if runner.text != "台北市今天宣布新政策" {
		t.Errorf("runner text = %q", runner.text)
	}

	var report model.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Mode != model.ModePlainText {
		t.Errorf("mode = %s", report.Mode)
	}
	if report.OverallCredibility != model.CredibilityHigh {
		t.Errorf("credibility = %s", report.OverallCredibility)
	}
}

func TestVerify_EmptyText(t *testing.T) {
	s := newTestServer(&stubRunner{})

	rec := postVerify(t, s, `{"text": "   "}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "text is required") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestVerify_InvalidJSON(t *testing.T) {
	s := newTestServer(&stubRunner{})

	rec := postVerify(t, s, `{"text": `)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid JSON") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestVerify_BadPublishDate(t *testing.T) {
	s := newTestServer(&stubRunner{})

	rec := postVerify(t, s, `{"text": "claim", "publishDate": "05/01/2025"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "publishDate must be YYYY-MM-DD") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestVerify_OptionsOverride(t *testing.T) {
	runner := &stubRunner{}
	s := newTestServer(runner)

	rec := postVerify(t, s, `{"text": "claim", "language": "en", "publishDate": "2025-05-01", "temporalCheck": false}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if runner.opts.Language != model.LanguageEn {
		t.Errorf("language = %s, want en", runner.opts.Language)
	}
	if runner.opts.TemporalCheck {
		t.Error("temporal check should be disabled by the request")
	}
	want := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	if !runner.opts.ReferenceDate.Equal(want) {
		t.Errorf("reference date = %v, want %v", runner.opts.ReferenceDate, want)
	}
}

func TestVerify_ConfigDefaults(t *testing.T) {
	runner := &stubRunner{}
	s := newTestServer(runner)

	rec := postVerify(t, s, `{"text": "claim"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	cfg := model.DefaultConfig()
	if runner.opts.Language != cfg.Output.Language {
		t.Errorf("language = %s, want config default %s", runner.opts.Language, cfg.Output.Language)
	}
	if runner.opts.TemporalCheck != cfg.Temporal.Enabled {
		t.Errorf("temporal check = %v, want config default %v", runner.opts.TemporalCheck, cfg.Temporal.Enabled)
	}
	if !runner.opts.ReferenceDate.IsZero() {
		t.Errorf("reference date = %v, want zero when no publishDate given", runner.opts.ReferenceDate)
	}
}

func TestVerify_CORS(t *testing.T) {
	s := newTestServer(&stubRunner{})

	req := httptest.NewRequest(http.MethodOptions, "/verify", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("allow-methods = %q", got)
	}
}
