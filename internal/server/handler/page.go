// Package handler provides the HTTP handlers for the review page and API.
package handler

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lawndlwd/ai-code-reviewer/internal/review"
	"github.com/lawndlwd/ai-code-reviewer/internal/stats"
	"github.com/lawndlwd/ai-code-reviewer/internal/upload"
)

//go:embed templates/index.html
var templateFS embed.FS

// maxUploadBytes bounds the multipart form held in memory.
const maxUploadBytes = 10 << 20

// warnEmptySubmission is shown when the review button is pressed without
// any code. This path never reaches the model or the error log.
const warnEmptySubmission = "Please paste your code or upload a file before submitting."

// PageHandler serves the single review page. Each POST re-runs the full
// flow: acquire input, compute statistics, optionally invoke the review.
type PageHandler struct {
	tmpl     *template.Template
	analyzer *stats.Analyzer
	reviewer *review.Reviewer
	logger   *slog.Logger
}

// pageData is everything the template renders for one request.
type pageData struct {
	Accept   string
	Code     string
	Stats    *stats.Stats
	Review   string
	Warning  string
	Reviewed bool
}

// NewPageHandler parses the embedded template and wires the handler.
func NewPageHandler(analyzer *stats.Analyzer, reviewer *review.Reviewer, logger *slog.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &PageHandler{
		tmpl:     tmpl,
		analyzer: analyzer,
		reviewer: reviewer,
		logger:   logger,
	}, nil
}

// Show renders the empty page.
func (h *PageHandler) Show(w http.ResponseWriter, _ *http.Request) {
	h.render(w, pageData{Accept: upload.AcceptAttr()})
}

// Submit handles both form actions: "preview" echoes the code and its
// statistics, "review" additionally invokes the model.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "could not parse form", http.StatusBadRequest)
		return
	}

	data := pageData{Accept: upload.AcceptAttr()}
	code := r.FormValue("code")

	// An uploaded file takes precedence over the textarea.
	if fileCode, warning := h.codeFromUpload(r); warning != "" {
		data.Warning = warning
		code = ""
	} else if fileCode != "" {
		code = fileCode
	}

	data.Code = code
	if code != "" {
		s := h.analyzer.Analyze(code)
		data.Stats = &s
	}

	if r.FormValue("action") == "review" && data.Warning == "" {
		if strings.TrimSpace(code) == "" {
			data.Warning = warnEmptySubmission
		} else {
			data.Review = h.reviewer.Review(r.Context(), code)
			data.Reviewed = true
		}
	}

	h.render(w, data)
}

// codeFromUpload decodes the uploaded file, if any. A decode failure is
// surfaced as a user-visible warning and the submission is treated as empty.
func (h *PageHandler) codeFromUpload(r *http.Request) (code, warning string) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			h.logger.Warn("could not read uploaded file", "error", err)
			return "", fmt.Sprintf("Error reading file: %v", err)
		}
		return "", ""
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Warn("could not read uploaded file", "file", header.Filename, "error", err)
		return "", fmt.Sprintf("Error reading file: %v", err)
	}

	decoded, err := upload.Decode(data)
	if err != nil {
		h.logger.Warn("could not decode uploaded file", "file", header.Filename, "error", err)
		return "", fmt.Sprintf("Error reading file %s: %v", header.Filename, err)
	}

	// Advisory only: the extension list hints at languages, it never
	// rejects text-decodable content.
	if !upload.Allowed(header.Filename) {
		h.logger.Debug("uploaded file has unadvertised extension", "file", header.Filename)
	}
	return decoded, ""
}

func (h *PageHandler) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, data); err != nil {
		h.logger.Error("could not render page", "error", err)
	}
}
