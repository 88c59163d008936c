package http

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "feedbackpulse/internal/errors"
	"feedbackpulse/internal/infrastructure"
)

// Template names
const (
	indexTemplate   = "index.html"
	resultsTemplate = "results.html"
)

// ParseTemplates parses the page templates from fsys
func ParseTemplates(fsys fs.FS) (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	for _, name := range []string{indexTemplate, resultsTemplate} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("template %q not defined", name)
		}
	}
	return tmpl, nil
}

// FeedbackHandler serves the upload form and the results page
type FeedbackHandler struct {
	templates    *template.Template
	service      AnalysisServiceInterface
	uploads      *UploadReader
	appName      string
	maxUploadMB  int64
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(
	templates *template.Template,
	service AnalysisServiceInterface,
	uploads *UploadReader,
	appName string,
	logger *slog.Logger,
	errorHandler *apierrors.ErrorHandler,
) *FeedbackHandler {
	return &FeedbackHandler{
		templates:    templates,
		service:      service,
		uploads:      uploads,
		appName:      appName,
		maxUploadMB:  uploads.maxBytes >> 20,
		logger:       infrastructure.WithComponent(logger, "feedback_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the page routes
func (h *FeedbackHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	r.Post("/analyze", h.Analyze)
	return r
}

// Index handles GET /
func (h *FeedbackHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, indexTemplate, map[string]interface{}{
		"AppName":     h.appName,
		"MaxUploadMB": h.maxUploadMB,
	})
}

// Analyze handles POST /analyze
func (h *FeedbackHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	defer cleanupMultipart(r)

	file, header, err := h.uploads.Read(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer file.Close()

	report, err := h.service.Analyze(r.Context(), header.Filename, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, resultsTemplate, map[string]interface{}{
		"AppName": h.appName,
		"Report":  report,
	})
}

// render executes the template into a buffer first so a failing template
// never leaves a half written page
func (h *FeedbackHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render template",
			slog.String("template", name),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrInternalServer)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
