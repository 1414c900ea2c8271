package domain

const (
	ColumnPlatform     = "Platform"
	ColumnAccountName  = "Account Name"
	ColumnCostPerClick = "Cost per Click"
)

// ReportPinnedColumns são as colunas fixadas no início de todo relatório
var ReportPinnedColumns = []string{ColumnPlatform, ColumnAccountName}

// Columns registra nomes de colunas distintos na ordem da primeira ocorrência.
// O registro nunca diminui.
type Columns struct {
	names []string
	seen  map[string]struct{}
}

func NewColumns(names ...string) *Columns {
	c := &Columns{seen: make(map[string]struct{})}
	c.Add(names...)
	return c
}

func (c *Columns) Add(names ...string) {
	for _, name := range names {
		if _, ok := c.seen[name]; ok {
			continue
		}
		c.seen[name] = struct{}{}
		c.names = append(c.names, name)
	}
}

func (c *Columns) Contains(name string) bool {
	_, ok := c.seen[name]
	return ok
}

func (c *Columns) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Columns) Len() int {
	return len(c.names)
}

// Table agrupa as linhas de um relatório e o superconjunto de colunas
type Table struct {
	Rows    []*Record
	pinned  []string
	columns *Columns
}

// NewTable cria uma tabela vazia com as colunas fixadas informadas, que
// aparecem no cabeçalho mesmo sem nenhuma linha
func NewTable(pinned ...string) *Table {
	p := make([]string, len(pinned))
	copy(p, pinned)
	return &Table{
		Rows:    make([]*Record, 0),
		pinned:  p,
		columns: NewColumns(),
	}
}

// NewReportTable cria uma tabela com Platform e Account Name fixados
func NewReportTable() *Table {
	return NewTable(ReportPinnedColumns...)
}

// Append adiciona a linha e registra todas as suas colunas
func (t *Table) Append(row *Record) {
	t.Rows = append(t.Rows, row)
	t.columns.Add(row.keys...)
}

// AddColumns registra colunas sem adicionar linhas
func (t *Table) AddColumns(names ...string) {
	t.columns.Add(names...)
}

// Header retorna as colunas fixadas seguidas das demais na ordem da primeira
// ocorrência
func (t *Table) Header() []string {
	header := make([]string, 0, len(t.pinned)+t.columns.Len())
	header = append(header, t.pinned...)
	for _, name := range t.columns.names {
		if t.isPinned(name) {
			continue
		}
		header = append(header, name)
	}
	return header
}

// Derive retorna uma tabela vazia que já conhece o cabeçalho desta
func (t *Table) Derive() *Table {
	out := NewTable(t.pinned...)
	out.columns.Add(t.columns.names...)
	return out
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) isPinned(name string) bool {
	for _, p := range t.pinned {
		if p == name {
			return true
		}
	}
	return false
}
