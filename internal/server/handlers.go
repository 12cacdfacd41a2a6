package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/models"
)

type categorizeRequest struct {
	Vault string `json:"vault"`
	Note  string `json:"note"`
}

type summarizeRequest struct {
	Folder string `json:"folder"`
}

type analyzeRequest struct {
	Folder    string `json:"folder"`
	Keyword   string `json:"keyword"`
	IncludeAI *bool  `json:"include_ai,omitempty"`
}

type askRequest struct {
	Vault    string `json:"vault"`
	Question string `json:"question"`
	MaxNotes int    `json:"max_notes"`
}

type reportRequest struct {
	Vault string `json:"vault"`
}

func (s *Server) handleCategorize(w http.ResponseWriter, r *http.Request) {
	var req categorizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.logger.Debug("categorize request", zap.String("note", req.Note))
	res, err := s.svc.Categorize(r.Context(), s.vault(req.Vault), req.Note)
	if err != nil {
		s.respondFailure(w, "categorize", err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.logger.Debug("summarize request", zap.String("folder", req.Folder))
	res, err := s.svc.SummarizeFolder(r.Context(), req.Folder)
	if err != nil {
		s.respondFailure(w, "summarize", err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decode(w, r, &req) {
		return
	}
	includeAI := true
	if req.IncludeAI != nil {
		includeAI = *req.IncludeAI
	}
	s.logger.Debug("analyze request", zap.String("folder", req.Folder), zap.String("keyword", req.Keyword), zap.Bool("include_ai", includeAI))
	res, err := s.svc.AnalyzePattern(r.Context(), req.Folder, req.Keyword, includeAI)
	if err != nil {
		s.respondFailure(w, "analyze", err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.logger.Debug("ask request", zap.String("question", req.Question), zap.Int("max_notes", req.MaxNotes))
	res, err := s.svc.AnswerQuestion(r.Context(), s.vault(req.Vault), req.Question, req.MaxNotes)
	if err != nil {
		s.respondFailure(w, "ask", err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.svc.GenerateReport(r.Context(), s.vault(req.Vault))
	if err != nil {
		s.respondFailure(w, "report", err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	vaultPath := s.vault(r.URL.Query().Get("vault"))
	cats, err := s.svc.Categories(r.Context(), vaultPath, refresh)
	if err != nil {
		s.respondFailure(w, "categories", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"vault": vaultPath, "categories": cats})
}

func (s *Server) handleInvalidateCategories(w http.ResponseWriter, r *http.Request) {
	if s.cache == nil {
		s.respondError(w, http.StatusNotImplemented, "category cache not available")
		return
	}
	s.cache.Invalidate()
	s.logger.Debug("category cache invalidated")
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"vault":    s.defaultVault,
		"watching": s.watching,
	}
	if s.cache != nil {
		resp["categories_cached"] = s.cache.IsValid()
		resp["category_ttl"] = s.cache.TTL().String()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) vault(requested string) string {
	if requested != "" {
		return requested
	}
	return s.defaultVault
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// statusFor maps an operation error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrEmptyResult):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrExternalService):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondFailure(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", zap.Error(err))
	} else {
		s.logger.Debug(op+" rejected", zap.Error(err))
	}
	s.respondError(w, status, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
