package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-report-api/internal/config"
	"github.com/vfg2006/ads-report-api/internal/domain"
	"github.com/vfg2006/ads-report-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func newProbeConfig(enabled bool, cron string) *config.Config {
	return &config.Config{
		Stract: config.Stract{TimeoutSeconds: 1, RetryAttempts: 1},
		UpstreamProbe: config.UpstreamProbe{
			Enabled:      enabled,
			CronSchedule: cron,
		},
	}
}

func TestUpstreamProbeService_Probe(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(lister *mocks.MockExtractor)
		wantHealthy   bool
		wantPlatforms int
		wantError     string
	}{
		{
			name: "API respondendo",
			setup: func(lister *mocks.MockExtractor) {
				lister.EXPECT().ListPlatforms(gomock.Any()).Return([]domain.Platform{
					{Name: "meta_ads"},
					{Name: "ga4"},
				}, nil)
			},
			wantHealthy:   true,
			wantPlatforms: 2,
		},
		{
			name: "API com erro",
			setup: func(lister *mocks.MockExtractor) {
				lister.EXPECT().ListPlatforms(gomock.Any()).Return(nil, errors.New("status 503"))
			},
			wantHealthy: false,
			wantError:   "status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			lister := mocks.NewMockExtractor(ctrl)
			tt.setup(lister)

			service := NewUpstreamProbeService(lister, newProbeConfig(true, "*/5 * * * *"))
			service.Probe(context.Background())

			status := service.GetStatus()
			assert.True(t, status.Enabled)
			assert.Equal(t, "*/5 * * * *", status.Cron)
			assert.Equal(t, tt.wantHealthy, status.Healthy)
			assert.Equal(t, tt.wantPlatforms, status.Platforms)
			assert.Equal(t, tt.wantError, status.LastError)
			require.NotNil(t, status.LastRunAt)
			assert.NotEmpty(t, status.LastRunTook)
		})
	}
}

func TestUpstreamProbeService_RecoversAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockExtractor(ctrl)

	gomock.InOrder(
		lister.EXPECT().ListPlatforms(gomock.Any()).Return(nil, errors.New("timeout")),
		lister.EXPECT().ListPlatforms(gomock.Any()).Return([]domain.Platform{{Name: "ga4"}}, nil),
	)

	service := NewUpstreamProbeService(lister, newProbeConfig(true, "*/5 * * * *"))

	service.Probe(context.Background())
	assert.False(t, service.GetStatus().Healthy)

	service.Probe(context.Background())
	status := service.GetStatus()
	assert.True(t, status.Healthy)
	assert.Empty(t, status.LastError)
	assert.Equal(t, 1, status.Platforms)
}

func TestUpstreamProbeService_ProbeUsesTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockExtractor(ctrl)

	lister.EXPECT().ListPlatforms(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]domain.Platform, error) {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
		return []domain.Platform{}, nil
	})

	service := NewUpstreamProbeService(lister, newProbeConfig(true, "*/5 * * * *"))
	service.Probe(context.Background())
}

func TestUpstreamProbeService_Start(t *testing.T) {
	t.Run("desabilitada não agenda", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lister := mocks.NewMockExtractor(ctrl)

		service := NewUpstreamProbeService(lister, newProbeConfig(false, ""))
		require.NoError(t, service.Start(context.Background()))

		status := service.GetStatus()
		assert.False(t, status.Enabled)
		assert.Nil(t, status.LastRunAt)
	})

	t.Run("cron inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lister := mocks.NewMockExtractor(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		service := NewUpstreamProbeService(lister, newProbeConfig(true, "not a cron"))
		assert.Error(t, service.Start(ctx))
	})
}
