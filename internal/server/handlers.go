package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/specdoc/specdoc/internal/apispec"
	"github.com/specdoc/specdoc/internal/examples"
	"github.com/specdoc/specdoc/internal/markdown"
	"github.com/specdoc/specdoc/internal/nlp"
	"github.com/specdoc/specdoc/internal/search"
	"github.com/specdoc/specdoc/internal/store"
	"github.com/specdoc/specdoc/internal/vectordb"
)

const maxUploadSize = 10 << 20 // 10 MiB

// handleUploadSpec accepts a multipart spec file, normalizes it, and
// makes it the current document.
func (s *Server) handleUploadSpec(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing 'file' form field")
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	spec, err := apispec.ParseAndNormalize(content)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.SetSpec(r.Context(), spec)

	normalized, err := json.Marshal(spec)
	if err == nil {
		_, err = s.db.SaveSpec(r.Context(), &store.SpecRecord{
			Title:      spec.Info.Title,
			Version:    spec.Info.Version,
			PathCount:  spec.PathCount(),
			Raw:        string(content),
			Normalized: string(normalized),
		})
	}
	if err != nil {
		// The upload itself succeeded; history is best effort.
		log.Printf("server: persisting spec: %v", err)
	}

	title := spec.Info.Title
	if title == "" {
		title = "undefined"
	}
	version := spec.Info.Version
	if version == "" {
		version = "undefined"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Spec uploaded successfully",
		"title":      title,
		"version":    version,
		"path_count": spec.PathCount(),
	})
}

// handleAPISummary serves the markdown summary document.
func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	_, doc, ok := s.current()
	if !ok {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "❌ No API spec uploaded yet")
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	io.WriteString(w, doc)
}

func (s *Server) handleGetSpec(w http.ResponseWriter, r *http.Request) {
	spec, _, ok := s.current()
	if !ok {
		writeError(w, http.StatusBadRequest, "No API spec uploaded yet")
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

// handleSummarizeJSON returns a per-operation summary and keyword list.
func (s *Server) handleSummarizeJSON(w http.ResponseWriter, r *http.Request) {
	spec, _, ok := s.current()
	if !ok {
		writeError(w, http.StatusBadRequest, "No API spec uploaded yet")
		return
	}

	type opSummary struct {
		Summary  string   `json:"summary"`
		Keywords []string `json:"keywords"`
	}
	result := map[string]map[string]opSummary{}
	for _, path := range spec.SortedPaths() {
		item := spec.Paths[path]
		result[path] = map[string]opSummary{}
		for _, method := range item.SortedMethods() {
			op := item[method]
			desc := op.Description
			if desc == "" {
				desc = op.Summary
			}
			result[path][strings.ToUpper(method)] = opSummary{
				Summary:  nlp.Summarize(desc),
				Keywords: nlp.Keywords(desc, 6),
			}
		}
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSearch runs a keyword search over the current spec.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	spec, _, _ := s.current()
	result := search.Keyword(spec, r.URL.Query().Get("keyword"))

	if result.Error == "" {
		if err := s.db.LogSearch(r.Context(), result.Keyword, result.TotalMatches); err != nil {
			log.Printf("server: logging search: %v", err)
		}
		writeJSON(w, http.StatusOK, result)
		return
	}
	writeJSON(w, http.StatusBadRequest, result)
}

// handleAsk answers a natural-language question via semantic search.
// With no vector index configured the endpoint reports "unavailable"
// rather than failing.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	if s.vectors == nil || s.vectors.Count() == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "unavailable",
			"message": "semantic search is not configured; upload a spec and configure an embedding provider",
		})
		return
	}

	matches, err := vectordb.Semantic(r.Context(), s.vectors, req.Question,
		s.cfg.SearchLimit, float32(s.cfg.SearchThreshold))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "semantic search failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "matches": matches})
}

// handleDocsData serves the summary sliced into render-ready sections:
// raw text plus table, diagram, and HTML views per tab.
func (s *Server) handleDocsData(w http.ResponseWriter, r *http.Request) {
	_, doc, ok := s.current()
	if !ok {
		writeError(w, http.StatusBadRequest, "No API spec uploaded yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": markdown.Tabs(doc)})
}

func (s *Server) handleListExamples(w http.ResponseWriter, r *http.Request) {
	if s.cfg.ExamplesDir == "" {
		writeJSON(w, http.StatusOK, []examples.Example{})
		return
	}
	found, err := examples.Discover(s.cfg.ExamplesDir, s.cfg.ExamplesInclude, s.cfg.ExamplesExclude)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if found == nil {
		found = []examples.Example{}
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleGetExample(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	content, err := examples.Load(s.cfg.ExamplesDir, name)
	if err != nil {
		writeError(w, http.StatusNotFound, "example not found")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(content)
}

func (s *Server) handleListSpecs(w http.ResponseWriter, r *http.Request) {
	recs, err := s.db.ListSpecs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if recs == nil {
		recs = []store.SpecRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}
