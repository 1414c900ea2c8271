package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-report-api/internal/config"
	"github.com/vfg2006/ads-report-api/internal/domain"
)

// PlatformLister é a parte da API agregadora consultada pela sonda
type PlatformLister interface {
	ListPlatforms(ctx context.Context) ([]domain.Platform, error)
}

// UpstreamProbeConfig representa a configuração da sonda da API agregadora
type UpstreamProbeConfig struct {
	CronSchedule string
	Enabled      bool
	Timeout      time.Duration
}

// UpstreamStatus é o resultado da última execução da sonda
type UpstreamStatus struct {
	Enabled     bool       `json:"enabled"`
	Cron        string     `json:"cron"`
	Healthy     bool       `json:"healthy"`
	Platforms   int        `json:"platforms"`
	LastError   string     `json:"last_error,omitempty"`
	LastRunAt   *time.Time `json:"last_run_at,omitempty"`
	LastRunTook string     `json:"last_run_took,omitempty"`
}

// UpstreamProbeService consulta periodicamente a lista de plataformas para
// saber se a API agregadora está respondendo
type UpstreamProbeService struct {
	scheduler  *gocron.Scheduler
	config     UpstreamProbeConfig
	lister     PlatformLister
	running    bool
	probeMutex sync.Mutex
	status     UpstreamStatus
}

func NewUpstreamProbeService(lister PlatformLister, appConfig *config.Config) *UpstreamProbeService {
	probeConfig := UpstreamProbeConfig{
		CronSchedule: appConfig.UpstreamProbe.CronSchedule,
		Enabled:      appConfig.UpstreamProbe.Enabled,
		Timeout:      appConfig.Stract.Timeout() * time.Duration(appConfig.Stract.RetryAttempts+1),
	}
	if probeConfig.Timeout <= 0 {
		probeConfig.Timeout = 30 * time.Second
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": probeConfig.CronSchedule,
		"enabled":       probeConfig.Enabled,
		"timeout":       probeConfig.Timeout.String(),
	}).Info("scheduler: upstream probe configuration loaded")

	return &UpstreamProbeService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    probeConfig,
		lister:    lister,
		status: UpstreamStatus{
			Enabled: probeConfig.Enabled,
			Cron:    probeConfig.CronSchedule,
		},
	}
}

// Start agenda a sonda; com a sonda desabilitada não faz nada
func (s *UpstreamProbeService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("scheduler: upstream probe disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: starting upstream probe")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.Probe(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduler: error scheduling upstream probe: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: stopping upstream probe")
		s.scheduler.Stop()
	}()

	return nil
}

// Probe executa uma consulta; se outra já estiver em andamento, retorna sem consultar
func (s *UpstreamProbeService) Probe(ctx context.Context) {
	s.probeMutex.Lock()
	if s.running {
		s.probeMutex.Unlock()
		logrus.Info("scheduler: upstream probe already running, skipping")
		return
	}
	s.running = true
	s.probeMutex.Unlock()

	startTime := time.Now()

	probeCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	platforms, err := s.lister.ListPlatforms(probeCtx)
	took := time.Since(startTime)

	s.probeMutex.Lock()
	defer s.probeMutex.Unlock()

	s.running = false
	s.status.LastRunAt = &startTime
	s.status.LastRunTook = took.String()

	if err != nil {
		s.status.Healthy = false
		s.status.LastError = err.Error()

		logrus.WithFields(logrus.Fields{
			"duration": took.String(),
			"error":    err.Error(),
		}).Warn("scheduler: upstream probe failed")
		return
	}

	s.status.Healthy = true
	s.status.LastError = ""
	s.status.Platforms = len(platforms)

	logrus.WithFields(logrus.Fields{
		"duration":        took.String(),
		"total_platforms": len(platforms),
	}).Info("scheduler: upstream probe succeeded")
}

// GetStatus retorna uma cópia do status atual da sonda
func (s *UpstreamProbeService) GetStatus() UpstreamStatus {
	s.probeMutex.Lock()
	defer s.probeMutex.Unlock()

	status := s.status
	if s.status.LastRunAt != nil {
		lastRunAt := *s.status.LastRunAt
		status.LastRunAt = &lastRunAt
	}
	return status
}
