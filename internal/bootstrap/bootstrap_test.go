package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-report-api/internal/config"
)

func TestNewPipeline_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer process-token", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/api/platforms":
			_, _ = w.Write([]byte(`{"platforms":[{"value":"meta_ads","text":"Facebook"}]}`))
		case "/api/accounts":
			_, _ = w.Write([]byte(`{"accounts":[{"id":"1","name":"Loja A"}]}`))
		case "/api/fields":
			_, _ = w.Write([]byte(`{"fields":[{"value":"spend"},{"value":"clicks"}]}`))
		case "/api/insights":
			assert.Equal(t, "process-token", r.URL.Query().Get("token"))
			assert.Equal(t, "spend,clicks", r.URL.Query().Get("fields"))
			_, _ = w.Write([]byte(`{"insights":[{"ad_id":"x","spend":"10","clicks":"4"}],"pagination":{"current":1,"total":1}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	cfg := &config.Config{
		Stract: config.Stract{
			BaseURL:        server.URL + "/api",
			AuthToken:      "process-token",
			TimeoutSeconds: 2,
			RetryBackoff:   time.Millisecond,
		},
		Pagination: config.Pagination{MaxPages: 50, KeepUnlistedObject: true},
	}

	pipeline := NewPipeline(cfg, prometheus.NewRegistry())

	table, err := pipeline.Reporter.GeneralSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Platform", "Account Name", "spend", "clicks", "Cost per Click"}, table.Header())
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "meta_ads", table.Rows[0].Value("Platform"))
	assert.Equal(t, 10.0, table.Rows[0].Value("spend"))
	assert.Equal(t, 2.5, table.Rows[0].Value("Cost per Click"))
}
