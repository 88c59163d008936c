package http

import (
	"context"
	"io"

	"feedbackpulse/internal/services"
)

// AnalysisServiceInterface defines the analysis operation the handlers need
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, fileName string, r io.Reader) (*services.Report, error)
}

var _ AnalysisServiceInterface = (*services.AnalysisService)(nil)
