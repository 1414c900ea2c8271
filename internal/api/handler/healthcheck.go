package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-report-api/internal/scheduler"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// UpstreamStatusProvider expõe o último resultado da sonda da API agregadora
type UpstreamStatusProvider interface {
	GetStatus() scheduler.UpstreamStatus
}

type healthResponse struct {
	Status   string                    `json:"status"`
	Upstream *scheduler.UpstreamStatus `json:"upstream,omitempty"`
}

// HealthcheckHandler responde {"status":"ok"} enquanto o processo estiver de pé;
// com a sonda habilitada inclui o seu último resultado
func HealthcheckHandler(probe UpstreamStatusProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}

		if probe != nil {
			status := probe.GetStatus()
			if status.Enabled {
				resp.Upstream = &status
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := jsonAPI.NewEncoder(w).Encode(resp); err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
