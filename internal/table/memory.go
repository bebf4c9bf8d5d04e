package table

import "context"

// MemorySource serves a table that is already in memory.
type MemorySource struct {
	Table *Table
	Err   error
}

// NewMemorySource builds a source from header labels and records.
func NewMemorySource(name string, header []string, records [][]any) *MemorySource {
	rows := make([]RawRow, 0, len(records))
	for _, rec := range records {
		row := make(RawRow, len(header))
		for i, label := range header {
			var v any
			if i < len(rec) {
				v = rec[i]
			}
			row[i] = Cell{Label: label, Value: v}
		}
		rows = append(rows, row)
	}
	return &MemorySource{Table: &Table{Name: name, Header: header, Rows: rows}}
}

func (m *MemorySource) Read(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Table == nil {
		return &Table{}, nil
	}
	return m.Table, nil
}
