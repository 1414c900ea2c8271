package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-report-api/internal/api"
	"github.com/vfg2006/ads-report-api/internal/bootstrap"
	"github.com/vfg2006/ads-report-api/internal/scheduler"
)

func main() {
	bootstrap.ConfigureLogger()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipeline := bootstrap.NewPipeline(cfg, prometheus.DefaultRegisterer)

	upstreamProbe := scheduler.NewUpstreamProbeService(pipeline.Integrator, cfg)
	if err := upstreamProbe.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar a sonda da API agregadora")
	}

	server, err := api.New(cfg, pipeline.Reporter, upstreamProbe, promhttp.Handler())
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
