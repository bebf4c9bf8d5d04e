// Package ingest maps raw table rows onto typed question records.
package ingest

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/KaramelBytes/qbank-cli/internal/question"
	"github.com/KaramelBytes/qbank-cli/internal/table"
)

// Result is the outcome of ingesting one table.
type Result struct {
	Columns  Columns
	Records  []question.Record
	Warnings []CoercionWarning
}

// Ingest resolves columns from header (or the first row's labels when header
// is empty) and converts every row into a record. Row order is preserved and
// SourceRowIndex is the 0-based input position. A missing question column
// returns a *SchemaError and no records.
func Ingest(header []string, rows []table.RawRow) (*Result, error) {
	labels := header
	if len(labels) == 0 && len(rows) > 0 {
		labels = rows[0].Labels()
	}
	cols, err := ResolveColumns(labels)
	if err != nil {
		return nil, err
	}
	res := &Result{Columns: cols, Records: make([]question.Record, 0, len(rows))}
	for i, row := range rows {
		rec := question.Record{SourceRowIndex: i}
		rec.QuestionText = res.cell(i, row, cols.Question)
		rec.Theme = res.cell(i, row, cols.Theme)
		rec.Level = res.cell(i, row, cols.Level)
		rec.AnswerFormat = res.cell(i, row, cols.AnswerFormat)
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func (r *Result) cell(i int, row table.RawRow, label string) string {
	if label == "" {
		return ""
	}
	v, _ := row.Get(label)
	s, ok := Coerce(v)
	if !ok {
		r.Warnings = append(r.Warnings, CoercionWarning{Row: i, Column: label, Value: describe(v)})
	}
	return s
}

// Coerce converts a cell value to text. nil becomes "". Values that are not
// strings or finite numbers yield "" and false.
func Coerce(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 32), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", false
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return "", false
	}
}

func describe(v any) string {
	s := fmt.Sprintf("%T(%v)", v, v)
	if len(s) > 64 {
		s = s[:61] + "..."
	}
	return s
}
