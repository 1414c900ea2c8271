package reporting

import (
	"strings"

	"github.com/vfg2006/ads-report-api/internal/domain"
	"github.com/vfg2006/ads-report-api/pkg/utils"
)

const (
	spendColumn  = "spend"
	clicksColumn = "clicks"
)

// Normalize devolve uma cópia da linha sem as colunas de identificador
// (id, *_id, "* id"), comparadas sem diferenciar maiúsculas
func Normalize(row *domain.Record) *domain.Record {
	out := domain.NewRecord()
	for _, key := range row.Keys() {
		if isIdentifierColumn(key) {
			continue
		}
		out.Set(key, row.Value(key))
	}
	return out
}

func isIdentifierColumn(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	return k == "id" || strings.HasSuffix(k, "_id") || strings.HasSuffix(k, " id")
}

// EnsureDerivedMetric calcula Cost per Click = spend / clicks quando a linha
// tem as duas colunas e ainda não tem o custo. Com clicks zerado ou não
// numérico o custo fica em branco.
func EnsureDerivedMetric(row *domain.Record) {
	if _, ok := row.LookupFold(domain.ColumnCostPerClick); ok {
		return
	}

	spendKey, hasSpend := row.LookupFold(spendColumn)
	clicksKey, hasClicks := row.LookupFold(clicksColumn)
	if !hasSpend || !hasClicks {
		return
	}

	clicks := utils.ToNumber(row.Value(clicksKey))
	if clicks == 0 {
		row.Set(domain.ColumnCostPerClick, "")
		return
	}

	row.Set(domain.ColumnCostPerClick, utils.ToNumber(row.Value(spendKey))/clicks)
}
