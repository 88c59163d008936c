package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		AssertLogContains(t, handler, slog.LevelWarn, "warn")
	})

	t.Run("derived loggers share records and keep attrs", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("component", "analysis")).Info("scoped")

		require.Equal(t, 1, handler.Count())
		assert.True(t, handler.ContainsAttr("component", "analysis"))
		AssertNoErrors(t, handler)
	})
}

func TestFixtures(t *testing.T) {
	data := WorkbookBytes(t, FeedbackRows())
	assert.NotEmpty(t, data)

	body, contentType := MultipartBody(t, "file", "feedback.xlsx", data)
	assert.Contains(t, contentType, "multipart/form-data")
	assert.Greater(t, body.Len(), len(data))
}
