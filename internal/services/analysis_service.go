package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/crypto/blake2b"

	apierrors "feedbackpulse/internal/errors"
	"feedbackpulse/internal/feedback"
	"feedbackpulse/internal/infrastructure"
	"feedbackpulse/internal/spreadsheet"
)

// Report is the result of analysing one upload
type Report struct {
	ID         string             `json:"id"`
	FileName   string             `json:"file_name"`
	Format     string             `json:"format"`
	Sheet      string             `json:"sheet"`
	Digest     string             `json:"digest"`
	SizeBytes  int64              `json:"size_bytes"`
	Rows       int                `json:"rows"`
	Columns    int                `json:"columns"`
	Summaries  []feedback.Summary `json:"summaries"`
	Skipped    []SkippedColumn    `json:"skipped,omitempty"`
	AnalyzedAt time.Time          `json:"analyzed_at"`
	DurationMS float64            `json:"duration_ms"`
}

// SkippedColumn names a column that produced no summary and why
type SkippedColumn struct {
	Name   string              `json:"name"`
	Reason feedback.SkipReason `json:"reason"`
}

// AnalysisService parses uploaded spreadsheets and classifies their columns
type AnalysisService struct {
	tracer  trace.Tracer
	metrics *infrastructure.FeedbackMetrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewAnalysisService creates a new analysis service. A nil tracer or metrics
// disables the corresponding instrumentation.
func NewAnalysisService(tracer trace.Tracer, metrics *infrastructure.FeedbackMetrics, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.InstrumentationName)
	}
	return &AnalysisService{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger.With(slog.String("service", "analysis")),
		now:     time.Now,
	}
}

// Analyze reads the upload, parses it and classifies every column in sheet
// order. Context cancellation is checked between columns.
func (s *AnalysisService) Analyze(ctx context.Context, fileName string, r io.Reader) (report *Report, err error) {
	start := s.now()
	ctx = infrastructure.EnsureTraceID(ctx)

	ctx, span := s.tracer.Start(ctx, "feedback.analyze",
		trace.WithAttributes(attribute.String("file.name", fileName)),
	)
	defer span.End()

	var (
		format string
		size   int64
	)
	defer func() {
		s.metrics.RecordAnalysis(ctx, format, size, s.now().Sub(start), err)
		if err != nil {
			infrastructure.RecordError(ctx, err)
		}
	}()

	f, err := spreadsheet.DetectFormat(fileName)
	if err != nil {
		return nil, apierrors.NewAppValidationError(CodeUnsupportedFormat, err.Error()).
			WithContext("file", fileName)
	}
	format = string(f)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload %q: %w", fileName, err)
	}
	size = int64(len(data))
	sum := blake2b.Sum256(data)

	table, err := spreadsheet.Parse(bytes.NewReader(data), fileName)
	if err != nil {
		s.logger.WarnContext(ctx, "upload could not be parsed",
			slog.String("file", fileName),
			slog.String("error", err.Error()))
		return nil, parseError(fileName, err)
	}

	names := table.Names()
	report = &Report{
		ID:        uuid.New().String(),
		FileName:  fileName,
		Format:    format,
		Sheet:     table.Sheet(),
		Digest:    hex.EncodeToString(sum[:]),
		SizeBytes: size,
		Rows:      table.Rows(),
		Columns:   len(names),
		Summaries: make([]feedback.Summary, 0, len(names)),
	}

	results, err := feedback.AnalyzeTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("analyse %q: %w", fileName, err)
	}

	for _, res := range results {
		if res.Summary == nil {
			s.logger.DebugContext(ctx, "column skipped",
				slog.String("column", res.Name),
				slog.String("reason", string(res.Skipped)))
			infrastructure.AddSpanEvent(ctx, "column.skipped",
				attribute.String("column", res.Name),
				attribute.String("reason", string(res.Skipped)))
			report.Skipped = append(report.Skipped, SkippedColumn{Name: res.Name, Reason: res.Skipped})
			s.metrics.RecordColumn(ctx, "", string(res.Skipped))
			continue
		}

		report.Summaries = append(report.Summaries, *res.Summary)
		s.metrics.RecordColumn(ctx, string(res.Summary.Type), "")
	}

	finished := s.now()
	report.AnalyzedAt = finished.UTC()
	report.DurationMS = float64(finished.Sub(start).Microseconds()) / 1000

	span.SetAttributes(
		attribute.String("feedback.report_id", report.ID),
		attribute.String("feedback.format", format),
		attribute.Int("feedback.rows", report.Rows),
		attribute.Int("feedback.columns", report.Columns),
		attribute.Int("feedback.summaries", len(report.Summaries)),
	)

	s.logger.InfoContext(ctx, "upload analysed",
		slog.String("report_id", report.ID),
		slog.String("file", fileName),
		slog.String("format", format),
		slog.Int("rows", report.Rows),
		slog.Int("columns", report.Columns),
		slog.Int("summaries", len(report.Summaries)),
		slog.Int("skipped", len(report.Skipped)),
		slog.Float64("duration_ms", report.DurationMS))

	return report, nil
}

// parseError maps spreadsheet failures onto typed application errors
func parseError(fileName string, err error) error {
	var appErr *apierrors.AppError
	switch {
	case errors.Is(err, spreadsheet.ErrMissingHeaderRow):
		appErr = apierrors.NewParsingError(CodeMissingHeaderRow,
			"The sheet needs a title row followed by a header row", err)
	case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
		appErr = apierrors.NewAppValidationError(CodeUnsupportedFormat, err.Error())
	default:
		appErr = apierrors.NewParsingError(CodeParseFailed, "The spreadsheet could not be read", err)
	}
	return appErr.WithContext("file", fileName)
}
