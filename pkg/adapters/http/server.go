// Package http exposes the renderer and a document store over HTTP.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/docrender"
	"github.com/aretw0/docrender/pkg/codec"
	"github.com/aretw0/docrender/pkg/components"
	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/ports"
	"github.com/aretw0/docrender/pkg/render"
)

// MaxBodySize bounds the size of uploaded documents.
const MaxBodySize = 4 << 20

// Server serves render and storage requests.
type Server struct {
	Renderer *docrender.Service
	// Store is optional; without it the /documents routes answer 501.
	Store   ports.DocumentStore
	Streams *StreamManager
	// Gatherer, when set, is exposed on /metrics.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewHandler creates the HTTP handler for s.
func NewHandler(s *Server) http.Handler {
	if s.Renderer == nil {
		s.Renderer = &docrender.Service{}
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.Logger)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/render", s.Render)
	r.Route("/documents", func(r chi.Router) {
		r.Use(s.requireStore)
		r.Get("/", s.ListDocuments)
		r.Get("/{id}", s.GetDocument)
		r.Put("/{id}", s.PutDocument)
		r.Delete("/{id}", s.DeleteDocument)
	})
	r.Get("/events", s.SubscribeEvents)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Store == nil {
			http.Error(w, "No document store configured", http.StatusNotImplemented)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Render handles POST /render. The body is a serialized document (JSON, or YAML
// when the content type says so) and the "format" query selects the output.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	format, err := docrender.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := s.decodeBody(w, r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid document: %v", err), http.StatusBadRequest)
		s.Logger.Warn("Render: invalid document", "err", err)
		return
	}
	s.write(w, format, doc)
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("List failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": ids})
}

// GetDocument handles GET /documents/{id}. Without a "format" query the stored
// source is returned; otherwise the rendered output.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, "Load", err)
		return
	}

	if !r.URL.Query().Has("format") {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Last-Modified", rec.UpdatedAt.UTC().Format(http.TimeFormat))
		if err := codec.Encode(codec.FormatJSON, w, rec.Document); err != nil {
			s.Logger.Error("GetDocument response encode failed", "err", err)
		}
		return
	}

	format, err := docrender.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.write(w, format, rec.Document)
}

// PutDocument handles PUT /documents/{id}.
func (s *Server) PutDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.decodeBody(w, r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid document: %v", err), http.StatusBadRequest)
		s.Logger.Warn("PutDocument: invalid document", "err", err)
		return
	}

	rec := &domain.Record{
		ID:       chi.URLParam(r, "id"),
		Title:    r.URL.Query().Get("title"),
		Document: doc,
	}
	if err := s.Store.Save(r.Context(), rec); err != nil {
		s.storeError(w, "Save", err)
		return
	}
	s.Streams.Broadcast(rec.ID, Event{Type: EventSaved, ID: rec.ID, Time: rec.UpdatedAt})
	s.Logger.Info("document saved", "id", rec.ID, "title", rec.Title)
	writeJSON(w, http.StatusOK, rec)
}

// DeleteDocument handles DELETE /documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.storeError(w, "Delete", err)
		return
	}
	s.Streams.Broadcast(id, Event{Type: EventDeleted, ID: id, Time: time.Now()})
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	formats := make([]string, len(docrender.Formats))
	for i, f := range docrender.Formats {
		formats[i] = string(f)
	}
	info := map[string]any{
		"app":     "docrender-http",
		"version": strings.TrimSpace(docrender.Version),
		"formats": formats,
	}
	if s.Renderer.Builtins {
		info["components"] = components.BuiltinSchemas()
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request) (domain.Document, error) {
	body := http.MaxBytesReader(w, r.Body, MaxBodySize)
	format := codec.FormatJSON
	if ct := r.Header.Get("Content-Type"); strings.Contains(ct, "yaml") {
		format = codec.FormatYAML
	}
	return codec.Decode(format, body)
}

func (s *Server) write(w http.ResponseWriter, format docrender.Format, doc domain.Document) {
	out, err := s.Renderer.Render(format, doc)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, render.ErrInvalidPropPath) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, fmt.Sprintf("Render error: %v", err), status)
		s.Logger.Error("Render failed", "err", err, "format", format)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	if _, err := io.WriteString(w, out); err != nil {
		s.Logger.Error("Render response write failed", "err", err)
	}
}

func (s *Server) storeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidDocumentID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.Logger.Error(op+" failed", "err", err)
	}
}

func contentType(f docrender.Format) string {
	switch f {
	case docrender.FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case docrender.FormatTree:
		return "application/json"
	}
	return "text/html; charset=utf-8"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
