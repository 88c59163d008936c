package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "feedbackpulse/internal/errors"
	"feedbackpulse/internal/shared/testutil"
)

func TestContentTypeValidator(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	errorHandler := apierrors.NewErrorHandler(logger, false)
	handler := ContentTypeValidator(errorHandler, "multipart/form-data")(http.HandlerFunc(okHandler))

	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
		wantCode    string
	}{
		{name: "GET skips check", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "multipart with boundary", method: http.MethodPost, contentType: "multipart/form-data; boundary=xyz", wantStatus: http.StatusOK},
		{name: "media type is case insensitive", method: http.MethodPost, contentType: "Multipart/Form-Data; boundary=xyz", wantStatus: http.StatusOK},
		{name: "missing content type", method: http.MethodPost, wantStatus: http.StatusBadRequest, wantCode: "MISSING_CONTENT_TYPE"},
		{name: "json rejected", method: http.MethodPost, contentType: "application/json", wantStatus: http.StatusUnsupportedMediaType, wantCode: "UNSUPPORTED_MEDIA_TYPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/analyze", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body["error_code"])
			}
		})
	}
}

func TestQueryParamValidator_ValidateEnum(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewQueryParamValidator(logger, apierrors.NewErrorHandler(logger, false))
	allowed := []string{"json", "csv"}

	tests := []struct {
		name       string
		query      string
		want       string
		wantOK     bool
		wantStatus int
	}{
		{name: "default when absent", query: "", want: "json", wantOK: true, wantStatus: http.StatusOK},
		{name: "allowed value", query: "?format=csv", want: "csv", wantOK: true, wantStatus: http.StatusOK},
		{name: "canonical casing", query: "?format=CSV", want: "csv", wantOK: true, wantStatus: http.StatusOK},
		{name: "rejected value", query: "?format=xml", wantOK: false, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			got, ok := v.ValidateEnum(rec, httptest.NewRequest(http.MethodPost, "/api/analyze"+tt.query, nil), "format", allowed, "json")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
