// Package server serves the output of finished runs over HTTP.
//
// The server is read-only. It lists the annotation source directories under
// a root output directory, returns their manifests as JSON and serves the
// rendered frames and summary charts:
//
//	GET /                                 HTML index of sources and frames
//	GET /healthz                          liveness probe
//	GET /api/sources                      sources with a manifest.json
//	GET /api/sources/{source}             the source's manifest
//	GET /files/{source}/{file}            a frame PNG or summary.html
//
// Path components are validated with [errors.ValidateFileName] before they
// touch the file system, so requests cannot escape the root directory.
package server

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ssnmovie/pkg/errors"
	"github.com/matzehuels/ssnmovie/pkg/pipeline"
	"github.com/matzehuels/ssnmovie/pkg/render/summary"
)

// shutdownTimeout bounds the graceful shutdown of [Server.ListenAndServe].
const shutdownTimeout = 5 * time.Second

// SourceInfo summarizes one source directory in the listing.
type SourceInfo struct {
	Source    string    `json:"source"`
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Network   string    `json:"network"`
	Frames    int       `json:"frames"`
	Annotated int       `json:"annotated"`
	Nodes     int       `json:"nodes"`
	Summary   bool      `json:"summary"`
}

// Server serves one output directory.
type Server struct {
	root   string
	logger *log.Logger
	router chi.Router
}

// New creates a server for the run output under root.
func New(root string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{root: root, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api/sources", func(r chi.Router) {
		r.Get("/", s.handleSources)
		r.Get("/{source}", s.handleManifest)
	})
	r.Get("/files/{source}/{file}", s.handleFile)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", addr, "root", s.root)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSources(w http.ResponseWriter, _ *http.Request) {
	sources, err := s.sources()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sources)
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	m, err := s.manifest(chi.URLParam(r, "source"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	source, file := chi.URLParam(r, "source"), chi.URLParam(r, "file")
	for _, name := range []string{source, file} {
		if err := errors.ValidateFileName(name); err != nil {
			s.writeError(w, err)
			return
		}
	}
	path := filepath.Join(s.root, source, file)
	if _, err := os.Stat(path); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s/%s", source, file))
		return
	}
	http.ServeFile(w, r, path)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	sources, err := s.sources()
	if err != nil {
		s.writeError(w, err)
		return
	}
	type row struct {
		SourceInfo
		Files []string
	}
	rows := make([]row, 0, len(sources))
	for _, src := range sources {
		m, err := s.manifest(src.Source)
		if err != nil {
			s.writeError(w, err)
			return
		}
		files := make([]string, len(m.Frames))
		for i, f := range m.Frames {
			files[i] = f.File
		}
		rows = append(rows, row{SourceInfo: src, Files: files})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, rows); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

// =============================================================================
// Helpers
// =============================================================================

// sources lists the subdirectories of root that hold a manifest, sorted by
// name.
func (s *Server) sources() ([]SourceInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "output directory %s", s.root)
		}
		return nil, err
	}
	out := []SourceInfo{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m, err := pipeline.ReadManifest(filepath.Join(s.root, e.Name(), pipeline.ManifestFile))
		if err != nil {
			if !os.IsNotExist(err) {
				s.logger.Warn("skipping unreadable manifest", "source", e.Name(), "error", err)
			}
			continue
		}
		_, serr := os.Stat(filepath.Join(s.root, e.Name(), summary.FileName))
		out = append(out, SourceInfo{
			Source:    e.Name(),
			RunID:     m.RunID,
			CreatedAt: m.CreatedAt,
			Network:   m.Network,
			Frames:    len(m.Frames),
			Annotated: m.Annotated,
			Nodes:     m.Nodes,
			Summary:   serr == nil,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out, nil
}

func (s *Server) manifest(source string) (*pipeline.Manifest, error) {
	if err := errors.ValidateFileName(source); err != nil {
		return nil, err
	}
	m, err := pipeline.ReadManifest(filepath.Join(s.root, source, pipeline.ManifestFile))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no manifest for source %s", source)
	}
	return m, err
}

// writeError maps error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidPath, errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs each request at debug level with its status and latency.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>ssnmovie</title>
<style>body{font-family:sans-serif;margin:2em}img{max-width:100%;border:1px solid #ccc}li{margin:.2em 0}</style>
</head><body>
<h1>Sequence similarity network frames</h1>
{{range .}}
<h2>{{.Source}}</h2>
<p>{{.Network}}: {{.Frames}} frames, {{.Annotated}} of {{.Nodes}} nodes annotated{{if .Summary}}, <a href="/files/{{.Source}}/summary.html">summary</a>{{end}}</p>
<ul>{{$src := .Source}}{{range .Files}}<li><a href="/files/{{$src}}/{{.}}">{{.}}</a></li>{{end}}</ul>
{{else}}
<p>No runs found.</p>
{{end}}
</body></html>
`))
