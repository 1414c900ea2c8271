package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-report-api/internal/config"
	"github.com/vfg2006/ads-report-api/internal/domain"
	"github.com/vfg2006/ads-report-api/internal/scheduler"
	"github.com/vfg2006/ads-report-api/internal/usecases/reporting/mocks"
	"github.com/vfg2006/ads-report-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func newTestServer(t *testing.T, service *mocks.MockReporter) http.Handler {
	t.Helper()

	cfg := &config.Config{Server: config.Server{Host: "127.0.0.1", Port: "0"}}

	registry := prometheus.NewRegistry()
	m := metrics.NewUpstreamMetrics(registry)
	m.IncPageCapReached("/insights")

	probe := scheduler.NewUpstreamProbeService(mocks.NewMockExtractor(gomock.NewController(t)), cfg)

	srv, err := New(cfg, service, probe, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	require.NoError(t, err)

	return srv.Handler()
}

func TestServer_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockReporter(ctrl)
	service.EXPECT().GeneralSummary(gomock.Any()).Return(domain.NewReportTable(), nil)

	handler := newTestServer(t, service)

	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantContains string
	}{
		{name: "index", path: "/", wantStatus: http.StatusOK, wantContains: "GET /geral"},
		{name: "healthz", path: "/healthz", wantStatus: http.StatusOK, wantContains: `"status":"ok"`},
		{name: "metrics", path: "/metrics", wantStatus: http.StatusOK, wantContains: "stract_pagination_cap_reached_total"},
		{name: "relatório", path: "/geral/resumo", wantStatus: http.StatusOK, wantContains: "Platform,Account Name"},
		{name: "rota inexistente", path: "/nada", wantStatus: http.StatusNotFound, wantContains: "VAL_004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantContains)

			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
			assert.Equal(t, "default-src 'none'", rec.Header().Get("Content-Security-Policy"))
			assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
		})
	}
}

func TestServer_PanicBecomesInternalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockReporter(ctrl)
	service.EXPECT().GeneralDetail(gomock.Any()).DoAndReturn(func(context.Context) (*domain.Table, error) {
		panic("unexpected")
	})

	rec := httptest.NewRecorder()
	newTestServer(t, service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/geral", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"SRV_001","message":"internal_error"}`, rec.Body.String())
}
