package render

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
	"github.com/vfg2006/ads-report-api/internal/domain"
)

const ContentTypeCSV = "text/csv; charset=utf-8"

// CSV escreve o cabeçalho da tabela seguido de uma linha por registro.
// Colunas ausentes no registro saem vazias; colunas fora do cabeçalho são ignoradas.
func CSV(w io.Writer, table *domain.Table) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	header := table.Header()
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "render: writing csv header")
	}

	line := make([]string, len(header))
	for _, row := range table.Rows {
		for i, column := range header {
			line[i] = domain.FormatValue(row.Value(column))
		}
		if err := writer.Write(line); err != nil {
			return errors.Wrap(err, "render: writing csv row")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "render: flushing csv")
}
