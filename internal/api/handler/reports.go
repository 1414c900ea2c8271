package handler

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-report-api/internal/domain"
	"github.com/vfg2006/ads-report-api/internal/usecases/reporting"
	"github.com/vfg2006/ads-report-api/pkg/apiErrors"
	"github.com/vfg2006/ads-report-api/pkg/log"
	"github.com/vfg2006/ads-report-api/pkg/render"
	"github.com/vfg2006/ads-report-api/pkg/utils"
)

// ReportIDHeader identifica cada CSV entregue, para cruzar com os logs
const ReportIDHeader = "X-Report-ID"

// platformRule restringe o nome da plataforma que vai para a query e para o nome do arquivo
const platformRule = `required,max=64,excludesall="\;`

var validate = validator.New()

// ValidPlatform rejeita nomes de plataforma que não podem ser usados no relatório
func ValidPlatform() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			platform := httprouter.ParamsFromContext(r.Context()).ByName("platform")

			if err := validate.Var(platform, platformRule); err != nil {
				log.ForContext(r.Context()).WithFields(log.Fields{
					"platform": platform,
					"error":    err.Error(),
				}).Warn("reports: invalid platform parameter")

				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid_platform", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GeneralReport entrega as linhas de todas as plataformas ou, com summary, uma linha por plataforma
func GeneralReport(service reporting.Reporter, summary bool) http.Handler {
	filename := "geral.csv"
	build := service.GeneralDetail
	if summary {
		filename = "geral_resumo.csv"
		build = service.GeneralSummary
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveReport(w, r, filename, "", build)
	})
}

// PlatformReport entrega as linhas de uma plataforma ou, com summary, uma linha por conta
func PlatformReport(service reporting.Reporter, summary bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		platform := httprouter.ParamsFromContext(r.Context()).ByName("platform")

		filename := platform + ".csv"
		build := service.PlatformDetail
		if summary {
			filename = platform + "_resumo.csv"
			build = service.PlatformSummary
		}

		serveReport(w, r, filename, platform, func(ctx context.Context) (*domain.Table, error) {
			return build(ctx, platform)
		})
	})
}

func serveReport(w http.ResponseWriter, r *http.Request, filename, platform string, build func(ctx context.Context) (*domain.Table, error)) {
	logger := log.ForContext(r.Context()).WithFields(log.Fields{
		"platform":    platform,
		"report_file": filename,
	})
	logger.Info("reports: building report")

	table, err := build(r.Context())
	if err != nil {
		logger.WithField("error", err.Error()).Error("reports: failed to build report")
		apiErrors.WriteInternalError(w)
		return
	}

	var buf bytes.Buffer
	if err := render.CSV(&buf, table); err != nil {
		logger.WithField("error", err.Error()).Error("reports: failed to render csv")
		apiErrors.WriteInternalError(w)
		return
	}

	reportID, err := utils.GenerateReportID()
	if err != nil {
		logger.WithField("error", err.Error()).Warn("reports: failed to generate report id")
	} else {
		w.Header().Set(ReportIDHeader, reportID)
	}

	w.Header().Set("Content-Type", render.ContentTypeCSV)
	w.Header().Set("Content-Disposition", `inline; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		logger.WithField("error", err.Error()).Warn("reports: failed to write response")
		return
	}

	logger.WithFields(log.Fields{
		"report_id":   reportID,
		"report_rows": table.Len(),
	}).Info("reports: report served")
}
