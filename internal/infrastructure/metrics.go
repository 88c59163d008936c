package infrastructure

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FeedbackMetrics holds all application-specific metrics
type FeedbackMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Analysis metrics
	UploadsTotal      metric.Int64Counter
	UploadBytes       metric.Int64Histogram
	ColumnsClassified metric.Int64Counter
	ColumnsSkipped    metric.Int64Counter
	AnalysisDuration  metric.Float64Histogram
	AnalysisErrors    metric.Int64Counter
}

// CreateFeedbackMetrics registers the application metrics on meter
func CreateFeedbackMetrics(meter metric.Meter) (*FeedbackMetrics, error) {
	var (
		m   FeedbackMetrics
		err error
	)

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, fmt.Errorf("http_requests_total: %w", err)
	}

	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("http_request_duration_seconds: %w", err)
	}

	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	); err != nil {
		return nil, fmt.Errorf("http_active_requests: %w", err)
	}

	if m.UploadsTotal, err = meter.Int64Counter(
		"feedback_uploads_total",
		metric.WithDescription("Total number of analysed uploads"),
	); err != nil {
		return nil, fmt.Errorf("feedback_uploads_total: %w", err)
	}

	if m.UploadBytes, err = meter.Int64Histogram(
		"feedback_upload_bytes",
		metric.WithDescription("Size of analysed uploads"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, fmt.Errorf("feedback_upload_bytes: %w", err)
	}

	if m.ColumnsClassified, err = meter.Int64Counter(
		"feedback_columns_classified_total",
		metric.WithDescription("Columns that produced a summary, by feedback type"),
	); err != nil {
		return nil, fmt.Errorf("feedback_columns_classified_total: %w", err)
	}

	if m.ColumnsSkipped, err = meter.Int64Counter(
		"feedback_columns_skipped_total",
		metric.WithDescription("Columns that produced no summary, by reason"),
	); err != nil {
		return nil, fmt.Errorf("feedback_columns_skipped_total: %w", err)
	}

	if m.AnalysisDuration, err = meter.Float64Histogram(
		"feedback_analysis_duration_seconds",
		metric.WithDescription("Time spent parsing and classifying an upload"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("feedback_analysis_duration_seconds: %w", err)
	}

	if m.AnalysisErrors, err = meter.Int64Counter(
		"feedback_analysis_errors_total",
		metric.WithDescription("Uploads that failed to parse or were cancelled"),
	); err != nil {
		return nil, fmt.Errorf("feedback_analysis_errors_total: %w", err)
	}

	return &m, nil
}

// RecordAnalysis records the outcome of one upload analysis
func (m *FeedbackMetrics) RecordAnalysis(ctx context.Context, format string, size int64, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("format", format),
		attribute.String("status", status),
	)

	m.UploadsTotal.Add(ctx, 1, attrs)
	m.UploadBytes.Record(ctx, size, metric.WithAttributes(attribute.String("format", format)))
	m.AnalysisDuration.Record(ctx, duration.Seconds(), attrs)

	if err != nil {
		m.AnalysisErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("format", format),
			attribute.String("error.type", fmt.Sprintf("%T", err)),
		))
	}
}

// RecordColumn counts a classified column by type, or a skipped one by reason
func (m *FeedbackMetrics) RecordColumn(ctx context.Context, feedbackType, skipReason string) {
	if m == nil {
		return
	}
	if skipReason != "" {
		m.ColumnsSkipped.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", skipReason)))
		return
	}
	m.ColumnsClassified.Add(ctx, 1, metric.WithAttributes(attribute.String("type", feedbackType)))
}
