package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specdoc/specdoc/internal/chat"
	"github.com/specdoc/specdoc/internal/store"
)

const testSpec = `{
  "openapi": "3.0.0",
  "info": {"title": "Petstore", "version": "1.0.0", "description": "A sample API that manages pets."},
  "paths": {
    "/pets": {
      "get": {
        "summary": "List pets",
        "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer"}}]
      }
    }
  }
}`

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(cfg, db, nil, chat.NewBot(nil))
}

func uploadSpec(t *testing.T, srv *Server, spec string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "spec.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(spec)); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-spec", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload failed: %d %s", rec.Code, rec.Body.String())
	}
}

func doGet(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, Config{})
	rec := doGet(srv, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUploadSpecResponse(t *testing.T) {
	srv := newTestServer(t, Config{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "spec.json")
	fw.Write([]byte(testSpec))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-spec", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["message"] != "Spec uploaded successfully" {
		t.Errorf("message = %v", resp["message"])
	}
	if resp["title"] != "Petstore" || resp["version"] != "1.0.0" {
		t.Errorf("title/version = %v/%v", resp["title"], resp["version"])
	}
	if resp["path_count"] != float64(1) {
		t.Errorf("path_count = %v", resp["path_count"])
	}
}

func TestUploadSpecMissingFile(t *testing.T) {
	srv := newTestServer(t, Config{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("other", "value")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-spec", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAPISummary(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := doGet(srv, "/api-summary")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status without spec = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "❌ No API spec uploaded yet") {
		t.Errorf("body = %q", rec.Body.String())
	}

	uploadSpec(t, srv, testSpec)

	rec = doGet(srv, "/api-summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "# 📄 Petstore — Summary") {
		t.Errorf("summary missing title:\n%s", body)
	}
	if !strings.Contains(body, "## 🔄 Flow Diagram") {
		t.Errorf("summary missing flow section:\n%s", body)
	}
}

func TestGetSpec(t *testing.T) {
	srv := newTestServer(t, Config{})
	uploadSpec(t, srv, testSpec)

	rec := doGet(srv, "/get-spec")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var spec struct {
		Info struct{ Title string }
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if spec.Info.Title != "Petstore" {
		t.Errorf("title = %q", spec.Info.Title)
	}
}

func TestSummarizeJSON(t *testing.T) {
	srv := newTestServer(t, Config{})
	uploadSpec(t, srv, testSpec)

	rec := doGet(srv, "/summarize-json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out map[string]map[string]struct {
		Summary  string   `json:"summary"`
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if _, ok := out["/pets"]["GET"]; !ok {
		t.Errorf("missing GET /pets entry: %v", out)
	}
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{})
	uploadSpec(t, srv, testSpec)

	rec := doGet(srv, "/search?keyword=pets")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		TotalMatches int                       `json:"total_matches"`
		Endpoints    map[string]map[string]any `json:"endpoints"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if result.TotalMatches == 0 {
		t.Error("no matches for pets")
	}
	if _, ok := result.Endpoints["/pets"]; !ok {
		t.Errorf("endpoints = %v", result.Endpoints)
	}

	// The search is logged.
	var count int
	if err := srv.db.QueryRow(`SELECT COUNT(*) FROM search_log`).Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 {
		t.Errorf("search_log count = %d, want 1", count)
	}
}

func TestSearchEmptyKeyword(t *testing.T) {
	srv := newTestServer(t, Config{})
	uploadSpec(t, srv, testSpec)

	rec := doGet(srv, "/search?keyword=")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAskUnavailableWithoutVectors(t *testing.T) {
	srv := newTestServer(t, Config{})
	uploadSpec(t, srv, testSpec)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":"how do I list pets?"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]any
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["status"] != "unavailable" {
		t.Errorf("status = %v", resp["status"])
	}
}

func TestDocsData(t *testing.T) {
	srv := newTestServer(t, Config{})
	uploadSpec(t, srv, testSpec)

	rec := doGet(srv, "/api/docs-data")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Sections []struct {
			Key   string `json:"key"`
			Table *struct {
				Headers []string `json:"headers"`
			} `json:"table"`
			Diagram string `json:"diagram"`
			HTML    string `json:"html"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(resp.Sections) != 5 {
		t.Fatalf("got %d sections, want 5", len(resp.Sections))
	}

	byKey := map[string]int{}
	for i, s := range resp.Sections {
		byKey[s.Key] = i
	}
	if resp.Sections[byKey["endpoints"]].Table == nil {
		t.Error("endpoints section has no table")
	}
	if resp.Sections[byKey["flow"]].Diagram == "" {
		t.Error("flow section has no diagram")
	}
	if resp.Sections[byKey["overview"]].HTML == "" {
		t.Error("overview section has no HTML")
	}
}

func TestDocsPage(t *testing.T) {
	srv := newTestServer(t, Config{})

	if rec := doGet(srv, "/docs"); rec.Code != http.StatusNotFound {
		t.Errorf("status without spec = %d, want 404", rec.Code)
	}

	uploadSpec(t, srv, testSpec)

	rec := doGet(srv, "/docs")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<title>Petstore API Documentation</title>") {
		t.Errorf("page title missing:\n%.200s", body)
	}
	if !strings.Contains(body, "<table>") {
		t.Errorf("endpoints table not rendered:\n%.400s", body)
	}
}

func TestChatRoundTrip(t *testing.T) {
	srv := newTestServer(t, Config{})
	uploadSpec(t, srv, testSpec)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"list the endpoints"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		SessionID string `json:"session_id"`
		Intent    string `json:"intent"`
		Answer    string `json:"answer"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("no session id assigned")
	}
	if resp.Intent != "Endpoints" {
		t.Errorf("intent = %q", resp.Intent)
	}
	if !strings.Contains(resp.Answer, "GET /pets") {
		t.Errorf("answer = %q", resp.Answer)
	}

	// Both sides of the exchange are persisted.
	msgs, err := srv.db.SessionMessages(req.Context(), resp.SessionID)
	if err != nil {
		t.Fatalf("SessionMessages: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Role != "user" || msgs[1].Role != "assistant" {
		t.Errorf("messages = %+v", msgs)
	}
}

func TestChatEmptyMessage(t *testing.T) {
	srv := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"  "}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListSpecsEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{})

	rec := doGet(srv, "/api/specs")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty listing = %q, want []", rec.Body.String())
	}

	uploadSpec(t, srv, testSpec)

	rec = doGet(srv, "/api/specs")
	var recs []store.SpecRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "Petstore" {
		t.Errorf("specs = %+v", recs)
	}
}

func TestExamplesEndpoints(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "petstore.json"), []byte(testSpec), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := newTestServer(t, Config{ExamplesDir: dir})

	rec := doGet(srv, "/api/examples")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var found []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &found); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(found) != 1 || found[0].Name != "petstore.json" {
		t.Errorf("examples = %+v", found)
	}

	rec = doGet(srv, "/api/examples/petstore.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("get example status = %d", rec.Code)
	}
	if rec.Body.String() != testSpec {
		t.Error("example content mismatch")
	}

	rec = doGet(srv, "/api/examples/missing.json")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing example status = %d, want 404", rec.Code)
	}
}

func TestRestoreLatest(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	first := New(Config{}, db, nil, chat.NewBot(nil))
	uploadSpec(t, first, testSpec)

	// A second server over the same database picks the spec back up.
	second := New(Config{}, db, nil, chat.NewBot(nil))
	if err := second.RestoreLatest(context.Background()); err != nil {
		t.Fatalf("RestoreLatest: %v", err)
	}

	rec := doGet(second, "/api-summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("status after restore = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Petstore") {
		t.Error("restored summary missing title")
	}
}
