package bootstrap

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-report-api/infrastructure/integrator/stract"
	"github.com/vfg2006/ads-report-api/infrastructure/integrator/stract/stractclient"
	"github.com/vfg2006/ads-report-api/internal/config"
	"github.com/vfg2006/ads-report-api/internal/usecases/reporting"
	"github.com/vfg2006/ads-report-api/pkg/metrics"
)

// Pipeline reúne o integrador da API agregadora e o serviço de relatórios sobre ele
type Pipeline struct {
	Integrator *stract.StractIntegrator
	Reporter   reporting.Reporter
}

// ConfigureLogger configura o formato e comportamento dos logs
func ConfigureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// LoadConfig carrega a configuração e aplica o nível de log configurado
func LoadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Debugf("Nível de log configurado para: %s", logLevel)

	return cfg, nil
}

// NewPipeline monta cliente, integrador e serviço de relatórios. Com reg nil as
// métricas não são registradas.
func NewPipeline(cfg *config.Config, reg prometheus.Registerer) Pipeline {
	upstreamMetrics := metrics.NewUpstreamMetrics(reg)

	client := stractclient.NewClient(cfg, upstreamMetrics)
	integrator := stract.New(cfg, client, upstreamMetrics)

	return Pipeline{
		Integrator: integrator,
		Reporter:   reporting.NewService(integrator, cfg.Stract.AuthToken),
	}
}
