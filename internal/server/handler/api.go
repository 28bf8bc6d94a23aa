package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lawndlwd/ai-code-reviewer/internal/review"
	"github.com/lawndlwd/ai-code-reviewer/internal/stats"
)

// APIHandler exposes the statistics and review flow as JSON endpoints with
// the same validation semantics as the page.
type APIHandler struct {
	analyzer *stats.Analyzer
	reviewer *review.Reviewer
	logger   *slog.Logger
}

// NewAPIHandler creates the JSON API handler.
func NewAPIHandler(analyzer *stats.Analyzer, reviewer *review.Reviewer, logger *slog.Logger) *APIHandler {
	return &APIHandler{analyzer: analyzer, reviewer: reviewer, logger: logger}
}

type submissionRequest struct {
	Code string `json:"code"`
}

type statsResponse struct {
	Stats stats.Stats `json:"stats"`
}

type reviewResponse struct {
	Stats  stats.Stats `json:"stats"`
	Review string      `json:"review"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Stats computes statistics for the submitted code.
func (h *APIHandler) Stats(w http.ResponseWriter, r *http.Request) {
	code, ok := h.decodeSubmission(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Stats: h.analyzer.Analyze(code)})
}

// Review computes statistics and invokes the model. Review failures are
// embedded in the review string, never returned as an HTTP error.
func (h *APIHandler) Review(w http.ResponseWriter, r *http.Request) {
	code, ok := h.decodeSubmission(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, reviewResponse{
		Stats:  h.analyzer.Analyze(code),
		Review: h.reviewer.Review(r.Context(), code),
	})
}

// decodeSubmission parses the request body and rejects blank submissions
// before any remote call is attempted.
func (h *APIHandler) decodeSubmission(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return "", false
	}
	if strings.TrimSpace(req.Code) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: warnEmptySubmission})
		return "", false
	}
	return req.Code, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
