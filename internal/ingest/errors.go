package ingest

import (
	"fmt"
	"strings"
)

// SchemaError indicates a required column could not be resolved. It is fatal
// for the whole run.
type SchemaError struct {
	Column    string
	Available []string
}

func (e *SchemaError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("missing required column %q: table has no columns", e.Column)
	}
	return fmt.Sprintf("missing required column %q (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

// CoercionWarning records a cell whose value could not be read as text. The
// field is left empty and the run continues.
type CoercionWarning struct {
	Row    int    `json:"row" yaml:"row"`
	Column string `json:"column" yaml:"column"`
	Value  string `json:"value" yaml:"value"`
}

func (w CoercionWarning) String() string {
	return fmt.Sprintf("row %d, column %q: unreadable value %s", w.Row, w.Column, w.Value)
}
