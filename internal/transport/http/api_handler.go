package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "feedbackpulse/internal/errors"
	"feedbackpulse/internal/exporter"
	"feedbackpulse/internal/infrastructure"
	"feedbackpulse/internal/middleware"
)

// Response formats of POST /api/analyze
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// APIHandler exposes the analysis as JSON or CSV
type APIHandler struct {
	service      AnalysisServiceInterface
	uploads      *UploadReader
	query        *middleware.QueryParamValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(service AnalysisServiceInterface, uploads *UploadReader, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *APIHandler {
	return &APIHandler{
		service:      service,
		uploads:      uploads,
		query:        middleware.NewQueryParamValidator(logger, errorHandler),
		logger:       infrastructure.WithComponent(logger, "api_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the API routes
func (h *APIHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(middleware.ContentTypeValidator(h.errorHandler, "multipart/form-data")).
		Post("/analyze", h.Analyze)
	return r
}

// Analyze handles POST /api/analyze
func (h *APIHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	format, ok := h.query.ValidateEnum(w, r, "format", []string{FormatJSON, FormatCSV}, FormatJSON)
	if !ok {
		return
	}

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

	if format == FormatCSV {
		var buf bytes.Buffer
		if err := exporter.WriteSummaries(&buf, report.Summaries); err != nil {
			h.errorHandler.HandleError(w, r, fmt.Errorf("export summaries: %w", err))
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.SummaryFileName(report.FileName)))
		w.Header().Set("X-Report-ID", report.ID)
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}
