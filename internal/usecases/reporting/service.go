package reporting

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-report-api/internal/domain"
)

// Service implementa Reporter sobre um Extractor
type Service struct {
	extractor    Extractor
	defaultToken string
}

// NewService cria o serviço de relatórios. defaultToken é usado nas contas
// que não trazem token próprio.
func NewService(extractor Extractor, defaultToken string) Reporter {
	return &Service{
		extractor:    extractor,
		defaultToken: defaultToken,
	}
}

func (s *Service) PlatformDetail(ctx context.Context, platform string) (*domain.Table, error) {
	startTime := time.Now()

	accounts, err := s.extractor.ListAccounts(ctx, platform)
	if err != nil {
		return nil, errors.Wrapf(err, "reporting: listing accounts of %s", platform)
	}

	fields, err := s.extractor.ListFields(ctx, platform)
	if err != nil {
		return nil, errors.Wrapf(err, "reporting: listing fields of %s", platform)
	}

	table := domain.NewReportTable()
	for _, account := range accounts {
		insights, err := s.extractor.ListInsights(ctx, platform, account, fields, s.defaultToken)
		if err != nil {
			return nil, errors.Wrapf(err, "reporting: fetching insights of %s/%s", platform, account.ID)
		}

		for _, insight := range insights {
			row := Normalize(insight)
			row.Set(domain.ColumnAccountName, account.DisplayName())
			row.Set(domain.ColumnPlatform, platform)
			EnsureDerivedMetric(row)
			table.Append(row)
		}
	}

	logrus.WithFields(logrus.Fields{
		"platform":       platform,
		"total_accounts": len(accounts),
		"total_fields":   len(fields),
		"rows":           table.Len(),
		"duration":       time.Since(startTime).String(),
	}).Info("reporting: platform table built")

	return table, nil
}

func (s *Service) PlatformSummary(ctx context.Context, platform string) (*domain.Table, error) {
	detail, err := s.PlatformDetail(ctx, platform)
	if err != nil {
		return nil, err
	}

	return Aggregate(detail, domain.ColumnAccountName, domain.ColumnPlatform), nil
}

func (s *Service) GeneralDetail(ctx context.Context) (*domain.Table, error) {
	startTime := time.Now()

	platforms, err := s.extractor.ListPlatforms(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reporting: listing platforms")
	}

	table := domain.NewReportTable()
	for _, platform := range platforms {
		if platform.Name == "" {
			continue
		}

		detail, err := s.PlatformDetail(ctx, platform.Name)
		if err != nil {
			return nil, err
		}

		for _, row := range detail.Rows {
			EnsureDerivedMetric(row)
			table.Append(row)
		}
	}

	logrus.WithFields(logrus.Fields{
		"total_platforms": len(platforms),
		"rows":            table.Len(),
		"duration":        time.Since(startTime).String(),
	}).Info("reporting: general table built")

	return table, nil
}

func (s *Service) GeneralSummary(ctx context.Context) (*domain.Table, error) {
	detail, err := s.GeneralDetail(ctx)
	if err != nil {
		return nil, err
	}

	return Aggregate(detail, domain.ColumnPlatform), nil
}
