package stract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-report-api/infrastructure/integrator/stract/stractclient"
	"github.com/vfg2006/ads-report-api/internal/config"
	"github.com/vfg2006/ads-report-api/internal/domain"
	"github.com/vfg2006/ads-report-api/pkg/metrics"
)

const (
	platformsPath = "/platforms"
	accountsPath  = "/accounts"
	fieldsPath    = "/fields"
	insightsPath  = "/insights"
)

type StractIntegrator struct {
	client  stractclient.Client
	policy  PaginationPolicy
	metrics *metrics.UpstreamMetrics
}

func New(cfg *config.Config, client stractclient.Client, m *metrics.UpstreamMetrics) *StractIntegrator {
	policy := PaginationPolicy{
		MaxPages:           cfg.Pagination.MaxPages,
		KeepUnlistedObject: cfg.Pagination.KeepUnlistedObject,
	}
	if policy.MaxPages <= 0 {
		policy.MaxPages = DefaultMaxPages
	}

	return NewWithPolicy(client, policy, m)
}

func NewWithPolicy(client stractclient.Client, policy PaginationPolicy, m *metrics.UpstreamMetrics) *StractIntegrator {
	return &StractIntegrator{
		client:  client,
		policy:  policy,
		metrics: m,
	}
}

// ListPlatforms aceita {"platforms":[{value,text}]}, lista de textos ou lista
// de objetos com value|name|platform e text|label|name
func (s *StractIntegrator) ListPlatforms(ctx context.Context) ([]domain.Platform, error) {
	data, err := s.client.Get(ctx, platformsPath, nil)
	if err != nil {
		logrus.WithError(err).Error("stract: failed to list platforms")
		return nil, err
	}

	platforms := make([]domain.Platform, 0)

	switch v := data.(type) {
	case *domain.Record:
		entries, ok := v.Value("platforms").([]any)
		if !ok {
			break
		}
		for _, entry := range entries {
			obj, ok := entry.(*domain.Record)
			if !ok {
				continue
			}
			name := firstString(obj, "value")
			if name == "" {
				continue
			}
			platforms = append(platforms, domain.Platform{
				Name:  name,
				Label: orDefault(firstString(obj, "text"), name),
			})
		}

	case []any:
		for _, entry := range v {
			switch e := entry.(type) {
			case string:
				if e != "" {
					platforms = append(platforms, domain.Platform{Name: e, Label: e})
				}
			case *domain.Record:
				name := firstString(e, "value", "name", "platform")
				if name == "" {
					continue
				}
				platforms = append(platforms, domain.Platform{
					Name:  name,
					Label: orDefault(firstString(e, "text", "label", "name"), name),
				})
			}
		}
	}

	logrus.WithField("total_platforms", len(platforms)).Debug("stract: platforms listed")

	return platforms, nil
}

// ListAccounts faz uma única requisição; contas sem value|id são descartadas
func (s *StractIntegrator) ListAccounts(ctx context.Context, platform string) ([]domain.Account, error) {
	data, err := s.client.Get(ctx, accountsPath, url.Values{"platform": {platform}})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"error":    err.Error(),
		}).Error("stract: failed to list accounts")
		return nil, err
	}

	var entries []any
	switch v := data.(type) {
	case *domain.Record:
		entries, _ = v.Value("accounts").([]any)
	case []any:
		entries = v
	}

	accounts := make([]domain.Account, 0, len(entries))
	for _, entry := range entries {
		obj, ok := entry.(*domain.Record)
		if !ok {
			continue
		}
		id := firstString(obj, "value", "id")
		if id == "" {
			continue
		}
		accounts = append(accounts, domain.Account{
			ID:    id,
			Name:  orDefault(firstString(obj, "text", "name"), id),
			Token: firstString(obj, "token", "access_token"),
		})
	}

	logrus.WithFields(logrus.Fields{
		"platform":       platform,
		"total_accounts": len(accounts),
	}).Debug("stract: accounts listed")

	return accounts, nil
}

// ListFields percorre as páginas de campos e remove duplicados mantendo a ordem
func (s *StractIntegrator) ListFields(ctx context.Context, platform string) ([]string, error) {
	items, err := s.FetchAllPages(ctx, fieldsPath, url.Values{"platform": {platform}})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"error":    err.Error(),
		}).Error("stract: failed to list fields")
		return nil, err
	}

	seen := make(map[string]struct{}, len(items))
	fields := make([]string, 0, len(items))
	for _, item := range items {
		var field string
		switch v := item.(type) {
		case *domain.Record:
			field = firstString(v, "value")
		case string:
			field = v
		}
		if field == "" {
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		fields = append(fields, field)
	}

	return fields, nil
}

// ListInsights busca os insights da conta usando o token dela ou, na falta,
// defaultToken. Conta sem ID devolve lista vazia; itens que não são objetos
// são descartados.
func (s *StractIntegrator) ListInsights(ctx context.Context, platform string, account domain.Account, fields []string, defaultToken string) ([]*domain.Record, error) {
	if account.ID == "" {
		logrus.WithField("platform", platform).Warn("stract: account without id, skipping insights")
		return []*domain.Record{}, nil
	}

	params := url.Values{
		"platform": {platform},
		"account":  {account.ID},
		"token":    {account.TokenOr(defaultToken)},
		"fields":   {strings.Join(fields, ",")},
	}

	items, err := s.FetchAllPages(ctx, insightsPath, params)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"platform":   platform,
			"account_id": account.ID,
			"error":      err.Error(),
		}).Error("stract: failed to fetch insights")
		return nil, err
	}

	rows := make([]*domain.Record, 0, len(items))
	for _, item := range items {
		if row, ok := item.(*domain.Record); ok {
			rows = append(rows, row)
		}
	}

	logrus.WithFields(logrus.Fields{
		"platform":   platform,
		"account_id": account.ID,
		"rows":       len(rows),
		"discarded":  len(items) - len(rows),
	}).Debug("stract: insights fetched")

	return rows, nil
}

// firstString devolve, como texto, o primeiro valor preenchido entre as chaves
func firstString(obj *domain.Record, keys ...string) string {
	for _, key := range keys {
		v := obj.Value(key)
		if !truthy(v) {
			continue
		}
		switch x := v.(type) {
		case string:
			return x
		case json.Number:
			return x.String()
		case *domain.Record, []any, bool:
			continue
		default:
			return fmt.Sprint(x)
		}
	}
	return ""
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
