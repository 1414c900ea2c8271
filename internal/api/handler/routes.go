package handler

import (
	"net/http"

	"github.com/vfg2006/ads-report-api/internal/api/handler/router"
	"github.com/vfg2006/ads-report-api/internal/usecases/reporting"
)

func Index() []router.Route {
	return []router.Route{
		{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: IndexHandler(),
		},
	}
}

func Healthcheck(probe UpstreamStatusProvider) []router.Route {
	return []router.Route{
		{
			Path:    "/healthz",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(probe),
		},
	}
}

func Metrics(metricsHandler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metricsHandler,
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/geral",
			Method:  http.MethodGet,
			Handler: GeneralReport(service, false),
		},
		{
			Path:    "/geral/resumo",
			Method:  http.MethodGet,
			Handler: GeneralReport(service, true),
		},
		{
			Path:        "/plataforma/:platform",
			Method:      http.MethodGet,
			Handler:     PlatformReport(service, false),
			Middlewares: []func(http.Handler) http.Handler{ValidPlatform()},
		},
		{
			Path:        "/plataforma/:platform/resumo",
			Method:      http.MethodGet,
			Handler:     PlatformReport(service, true),
			Middlewares: []func(http.Handler) http.Handler{ValidPlatform()},
		},
	}
}
