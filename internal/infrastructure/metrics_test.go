package infrastructure

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if data, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}
	return sums
}

func TestFeedbackMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	m, err := CreateFeedbackMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordAnalysis(ctx, "excel", 2048, 10*time.Millisecond, nil)
	m.RecordAnalysis(ctx, "csv", 10, time.Millisecond, errors.New("bad file"))
	m.RecordColumn(ctx, "Binary Feedback", "")
	m.RecordColumn(ctx, "", "ignored_name")
	m.RecordColumn(ctx, "", "datetime")

	sums := collectSums(t, reader)
	assert.Equal(t, int64(2), sums["feedback_uploads_total"])
	assert.Equal(t, int64(1), sums["feedback_analysis_errors_total"])
	assert.Equal(t, int64(1), sums["feedback_columns_classified_total"])
	assert.Equal(t, int64(2), sums["feedback_columns_skipped_total"])
}

func TestFeedbackMetrics_NilSafe(t *testing.T) {
	var m *FeedbackMetrics
	assert.NotPanics(t, func() {
		m.RecordAnalysis(context.Background(), "excel", 1, time.Second, nil)
		m.RecordColumn(context.Background(), "Binary Feedback", "")
	})
}
