package reporting

import (
	"github.com/vfg2006/ads-report-api/internal/domain"
	"github.com/vfg2006/ads-report-api/pkg/utils"
)

// Aggregate agrupa as linhas pelo valor de groupBy, na ordem em que cada
// grupo aparece. Cada grupo começa com todas as colunas em branco; as colunas
// de carry recebem o valor da primeira linha do grupo e as demais somam apenas
// os valores numéricos.
func Aggregate(table *domain.Table, groupBy string, carry ...string) *domain.Table {
	out := table.Derive()
	header := table.Header()

	skip := make(map[string]struct{}, len(carry)+1)
	skip[groupBy] = struct{}{}
	for _, c := range carry {
		skip[c] = struct{}{}
	}

	buckets := make(map[string]*domain.Record)
	order := make([]string, 0)

	for _, row := range table.Rows {
		key := domain.FormatValue(row.Value(groupBy))

		bucket, ok := buckets[key]
		if !ok {
			bucket = domain.NewRecord()
			for _, h := range header {
				bucket.Set(h, "")
			}
			bucket.Set(groupBy, orBlank(row.Value(groupBy)))
			for _, c := range carry {
				bucket.Set(c, orBlank(row.Value(c)))
			}
			buckets[key] = bucket
			order = append(order, key)
		}

		for _, h := range header {
			if _, skipped := skip[h]; skipped {
				continue
			}
			v := row.Value(h)
			if !utils.IsNumeric(v) {
				continue
			}
			bucket.Set(h, utils.ToNumber(bucket.Value(h))+utils.ToNumber(v))
		}
	}

	for _, key := range order {
		out.Append(buckets[key])
	}

	return out
}

func orBlank(v any) any {
	if v == nil {
		return ""
	}
	return v
}
