package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackpulse/internal/services"
	"feedbackpulse/internal/shared/testutil"
)

func newHealthRouter(t *testing.T, check services.ReadinessFunc) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	svc := services.NewHealthService("v1.0.0-test", "", logger)
	if check != nil {
		svc.RegisterCheck("templates", check)
	}
	h := NewHealthHandler(svc, logger)

	r := chi.NewRouter()
	r.Mount("/api/health", h.Routes())
	r.Get("/api/version", h.Version)
	return r
}

func TestHealthHandler_Endpoints(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		check      services.ReadinessFunc
		wantStatus int
		wantField  string
		wantValue  string
	}{
		{name: "health", path: "/api/health", wantStatus: http.StatusOK, wantField: "status", wantValue: "ok"},
		{name: "live", path: "/api/health/live", wantStatus: http.StatusOK, wantField: "status", wantValue: "alive"},
		{
			name:       "ready",
			path:       "/api/health/ready",
			check:      func(context.Context) error { return nil },
			wantStatus: http.StatusOK,
			wantField:  "status",
			wantValue:  "ready",
		},
		{
			name:       "not ready",
			path:       "/api/health/ready",
			check:      func(context.Context) error { return errors.New("templates missing") },
			wantStatus: http.StatusServiceUnavailable,
			wantField:  "status",
			wantValue:  "not_ready",
		},
		{name: "version", path: "/api/version", wantStatus: http.StatusOK, wantField: "version", wantValue: "v1.0.0-test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newHealthRouter(t, tt.check).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantValue, body[tt.wantField])
		})
	}
}
