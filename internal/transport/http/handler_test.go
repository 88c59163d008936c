package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "feedbackpulse/internal/errors"
	"feedbackpulse/internal/services"
	"feedbackpulse/internal/shared/testutil"
	"feedbackpulse/internal/validation"
	"feedbackpulse/web"
)

const testMaxBytes = 10 << 20

// MockAnalysisService implements AnalysisServiceInterface for handler tests
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, fileName string, r io.Reader) (*services.Report, error) {
	args := m.Called(ctx, fileName, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Report), args.Error(1)
}

type handlerDeps struct {
	service      AnalysisServiceInterface
	uploads      *UploadReader
	errorHandler *apierrors.ErrorHandler
	logs         *testutil.BufferedSlogHandler
}

func newHandlerDeps(t *testing.T, service AnalysisServiceInterface, maxBytes int64) handlerDeps {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)
	if service == nil {
		service = services.NewAnalysisService(nil, nil, logger)
	}
	return handlerDeps{
		service:      service,
		uploads:      NewUploadReader(maxBytes, validation.NewUploadValidator(maxBytes, logger), logger),
		errorHandler: apierrors.NewErrorHandler(logger, false),
		logs:         logs,
	}
}

func newFeedbackHandler(t *testing.T, deps handlerDeps) *FeedbackHandler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	tmpl, err := ParseTemplates(web.Templates())
	require.NoError(t, err)
	return NewFeedbackHandler(tmpl, deps.service, deps.uploads, "feedback-pulse", logger, deps.errorHandler)
}

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	body, contentType := testutil.MultipartBody(t, UploadField, filename, content)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	return req
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	require.Equal(t, apierrors.ContentTypeProblem, rec.Header().Get("Content-Type"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func emptyMultipart(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	body, contentType := testutil.MultipartBody(t, "other", "notes.txt", []byte("x"))
	return body, contentType
}
