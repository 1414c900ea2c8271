package handler

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

var indexLines = []string{
	"ads-report-api",
	"GET /geral",
	"GET /geral/resumo",
	"GET /plataforma/{platform}",
	"GET /plataforma/{platform}/resumo",
	"GET /healthz",
	"GET /metrics",
}

func IndexHandler() http.Handler {
	body := strings.Join(indexLines, "\n") + "\n"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(body)); err != nil {
			logrus.WithError(err).Warn("error responding to index")
		}
	})
}
