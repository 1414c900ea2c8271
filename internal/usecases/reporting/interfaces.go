package reporting

import (
	"context"

	"github.com/vfg2006/ads-report-api/internal/domain"
)

// Extractor define a interface para obter os dados da API agregadora
type Extractor interface {
	// ListPlatforms obtém as plataformas disponíveis
	ListPlatforms(ctx context.Context) ([]domain.Platform, error)

	// ListAccounts obtém as contas de anúncios de uma plataforma
	ListAccounts(ctx context.Context, platform string) ([]domain.Account, error)

	// ListFields obtém os campos de insight disponíveis para uma plataforma
	ListFields(ctx context.Context, platform string) ([]string, error)

	// ListInsights obtém os insights da conta; defaultToken é usado quando a conta não tem token próprio
	ListInsights(ctx context.Context, platform string, account domain.Account, fields []string, defaultToken string) ([]*domain.Record, error)
}

// Reporter monta as tabelas dos relatórios
type Reporter interface {
	// PlatformDetail obtém as linhas de insight de todas as contas da plataforma
	PlatformDetail(ctx context.Context, platform string) (*domain.Table, error)

	// PlatformSummary obtém uma linha por conta da plataforma
	PlatformSummary(ctx context.Context, platform string) (*domain.Table, error)

	// GeneralDetail obtém as linhas de insight de todas as plataformas
	GeneralDetail(ctx context.Context) (*domain.Table, error)

	// GeneralSummary obtém uma linha por plataforma
	GeneralSummary(ctx context.Context) (*domain.Table, error)
}
