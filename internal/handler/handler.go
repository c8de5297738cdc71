// Package handler exposes the analytics pipeline over HTTP: a small form page,
// demo and custom report generation, and a health probe. Every generation
// request runs in its own scratch directory and ships its artifacts back as a
// single zip.
package handler

import (
	"archive/zip"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/sahayak/internal/llm"
	"github.com/pavelanni/sahayak/internal/pipeline"
	"github.com/pavelanni/sahayak/internal/store"
)

//go:embed static/index.html
var staticFS embed.FS

// uploads larger than this are rejected outright
const maxUploadBytes = 16 << 20

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	requester *llm.Requester
	version   string
}

// New creates a new Handler.
func New(requester *llm.Requester, version string) *Handler {
	return &Handler{requester: requester, version: version}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Post("/generate-demo-report", h.handleDemoReport)
	r.Post("/generate-custom-report", h.handleCustomReport)
	r.Get("/api/health", h.handleHealth)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (h *Handler) handleDemoReport(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, store.NewDemo())
}

func (h *Handler) handleCustomReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("student_data")
	if err != nil {
		http.Error(w, "missing student_data file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	s, err := store.NewFromJSON(data)
	if err != nil {
		var batchErr *store.BatchError
		if errors.As(err, &batchErr) {
			http.Error(w, batchErr.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "invalid student data: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.generate(w, r, s)
}

// generate runs the pipeline in a scratch directory and streams the resulting
// artifacts back as one zip. The scratch directory is removed after delivery.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request, s *store.Store) {
	dir, err := os.MkdirTemp("", "sahayak-run-*")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			slog.Warn("cleanup run directory", "dir", dir, "error", err)
		}
	}()

	bundle, err := pipeline.New(h.requester, dir).Run(r.Context(), s.Records())
	if err != nil {
		slog.Error("report generation failed", "error", err)
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="SAHAYAK_Report_%s.zip"`, bundle.Timestamp))
	if err := writeZip(w, bundle.Files()); err != nil {
		slog.Error("stream report zip", "error", err)
	}
}

func writeZip(w io.Writer, files []string) error {
	zw := zip.NewWriter(w)
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		entry, err := zw.Create(filepath.Base(path))
		if err != nil {
			f.Close()
			return fmt.Errorf("zip entry %s: %w", path, err)
		}
		if _, err := io.Copy(entry, f); err != nil {
			f.Close()
			return fmt.Errorf("zip copy %s: %w", path, err)
		}
		f.Close()
	}
	return zw.Close()
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "SAHAYAK Analytics",
		"version": h.version,
	})
}
