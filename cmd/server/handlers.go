package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/himanishpuri/SongDash/internal/chart"
	"github.com/himanishpuri/SongDash/pkg/logger"
	"github.com/himanishpuri/SongDash/pkg/songdash"
	"github.com/himanishpuri/SongDash/pkg/utils"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service songdash.Service
	config  *ServerConfig
	log     songdash.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	DataPath       string
	Engine         string
	AllowedOrigins []string
}

// NewServer creates a new server instance
func NewServer(service songdash.Service, config *ServerConfig) *Server {
	return &Server{
		service: service,
		config:  config,
		log:     logger.GetLogger(),
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

func (s *Server) allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

// session decodes the request and filters the dataset for it.
func (s *Server) session(r *http.Request) (dashboardRequest, *songdash.Session, int, error) {
	req, err := s.parseRequest(r)
	if err != nil {
		return req, nil, http.StatusBadRequest, err
	}
	sess, err := s.service.NewSession(r.Context(), requestID(r), req.Selection, req.Options)
	if err != nil {
		s.log.Errorf("[%s] Failed to build session: %v", utils.ShortID(requestID(r)), err)
		return req, nil, http.StatusInternalServerError, errors.New("failed to filter dataset")
	}
	req.Selection = sess.Selection
	return req, sess, http.StatusOK, nil
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !s.allowGet(w, r) {
		return
	}

	req, sess, code, err := s.session(r)
	if err != nil {
		http.Error(w, err.Error(), code)
		return
	}
	page, err := s.service.Render(r.Context(), req.View, sess)
	if err != nil {
		http.Error(w, "failed to render view", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, s.dashboardData(req, sess, page)); err != nil {
		s.log.Errorf("Failed to execute dashboard template: %v", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleMetrics handles GET /api/health/metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	data := s.service.Dataset()
	lo, hi := s.service.TempoBounds()

	resp := MetricsResponse{
		Status:       "healthy",
		DataPath:     s.service.DataPath(),
		SongCount:    data.Len(),
		SongCountFmt: humanize.Comma(int64(data.Len())),
		ColumnCount:  len(data.Columns),
		KeyCount:     len(songdash.DistinctKeyNames(data)),
		Engine:       s.service.Engine(),
		TempoMin:     lo,
		TempoMax:     hi,
	}
	if size, human, err := utils.FileSize(s.service.DataPath()); err != nil {
		s.log.Warnf("Failed to stat dataset: %v", err)
	} else {
		resp.DataBytes, resp.DataSize = size, human
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleKeys handles GET /api/keys
func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	names := songdash.KeyNames()
	mapping := make([]KeyDTO, len(names))
	for code, name := range names {
		mapping[code] = KeyDTO{Code: code, Name: name}
	}
	s.respondJSON(w, http.StatusOK, KeysResponse{
		Mapping: mapping,
		Present: songdash.DistinctKeyNames(s.service.Dataset()),
	})
}

// handleSongs handles GET /api/songs
func (s *Server) handleSongs(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	req, sess, code, err := s.session(r)
	if err != nil {
		s.respondError(w, code, err.Error())
		return
	}
	page := songdash.BuildOverview(sess.Filtered)
	s.respondJSON(w, http.StatusOK, SongsResponse{
		Selection: req.Selection,
		Columns:   page.Columns,
		Rows:      page.Rows,
		Count:     page.Count,
	})
}

// handleViews handles GET /api/views?view=<name>
func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	req, sess, code, err := s.session(r)
	if err != nil {
		s.respondError(w, code, err.Error())
		return
	}
	page, err := s.service.Render(r.Context(), req.View, sess)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to render view")
		return
	}
	if page == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.respondJSON(w, http.StatusOK, ViewResponse{
		View:      page.View(),
		Selection: req.Selection,
		Options:   sess.Options,
		Page:      page,
	})
}

// handleChart handles GET /charts/{keys,tempo,feature}[.svg|.png]
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	file := path.Base(r.URL.Path)
	name := strings.TrimSuffix(file, path.Ext(file))
	view, ok := chart.ViewFor(name)
	if !ok {
		s.respondError(w, http.StatusNotFound, "Unknown chart "+name)
		return
	}

	hint := r.URL.Query().Get("format")
	if hint == "" {
		hint = path.Ext(file)
	}
	format, err := chart.ParseFormat(hint)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, sess, code, err := s.session(r)
	if err != nil {
		s.respondError(w, code, err.Error())
		return
	}
	page, err := s.service.Render(r.Context(), string(view), sess)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to render view")
		return
	}

	var buf bytes.Buffer
	if err := chart.ForPage(&buf, format, name, page); err != nil {
		s.log.Errorf("[%s] Failed to draw %s chart: %v", utils.ShortID(sess.ID), name, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to draw chart")
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
