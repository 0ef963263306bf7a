// Package server exposes the conversion pipeline over HTTP: base64 CSV in,
// base64 pain.001.001.09 XML out.
package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/loteiro/loteiro/pkg/config"
	"github.com/loteiro/loteiro/pkg/pain"
)

// Server handles HTTP requests for payment batch conversion.
type Server struct {
	config    *config.Config
	logger    *log.Logger
	mux       *http.ServeMux
	converter *pain.Converter
}

// New creates a new HTTP server. checker may be nil to skip schema
// validation of the produced documents.
func New(cfg *config.Config, logger *log.Logger, checker pain.SchemaChecker) *Server {
	s := &Server{
		config:    cfg,
		logger:    logger,
		mux:       http.NewServeMux(),
		converter: pain.NewConverter(checker, cfg.DelimiterRune()),
	}
	s.setupRoutes()
	return s
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// Handler returns the configured request handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/convert", s.withLogging(s.withAuth(s.handleConvert)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// convertRequest is the transport contract: a base64-encoded batch file
// plus an optional original filename.
type convertRequest struct {
	Filename  string `json:"filename"`
	CSVBase64 string `json:"csv_base64"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}
	if req.CSVBase64 == "" {
		s.respondError(w, r, http.StatusBadRequest, "csv_base64 is required", nil)
		return
	}
	if req.Filename == "" {
		req.Filename = "lote.csv"
	}

	data, err := base64.StdEncoding.DecodeString(req.CSVBase64)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "csv_base64 is not valid base64", err)
		return
	}

	xmlText, err := s.converter.ConvertFile(data, req.Filename)
	if err != nil {
		// The error message is the client-visible diagnostic; stack
		// traces never reach the response body.
		s.respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	xmlName := strings.TrimSuffix(req.Filename, filepath.Ext(req.Filename)) + ".xml"
	s.logger.Info("batch converted", "file", req.Filename, "output", xmlName)

	if err := s.writeJSON(w, http.StatusOK, map[string]string{
		"status":       "success",
		"xml_filename": xmlName,
		"xml_base64":   base64.StdEncoding.EncodeToString([]byte(xmlText)),
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// --- middleware ---

// withAuth enforces an exact bearer-token match when a token is configured.
// The conversion core is never reached on a mismatch.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.Token != "" {
			if r.Header.Get("Authorization") != "Bearer "+s.config.Token {
				s.respondError(w, r, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
		}
		next(w, r)
	}
}

// withLogging wraps a handler to log requests and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}

// --- helpers ---

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}
