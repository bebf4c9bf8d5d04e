// Package table reads tabular question sources into ordered raw rows.
package table

import (
	"context"
	"fmt"
)

// Cell is one labelled value of a row. Value is a string, a Go number or nil.
type Cell struct {
	Label string
	Value any
}

// RawRow is an ordered sequence of cells as produced by a source.
type RawRow []Cell

// Get returns the value stored under label.
func (r RawRow) Get(label string) (any, bool) {
	for _, c := range r {
		if c.Label == label {
			return c.Value, true
		}
	}
	return nil, false
}

// Labels returns the column labels of the row in order.
func (r RawRow) Labels() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Label
	}
	return out
}

// Table is the full content of a source.
type Table struct {
	Name   string
	Header []string
	Rows   []RawRow
}

// Source supplies a table. Implementations read the whole input and release
// any handle before returning.
type Source interface {
	Read(ctx context.Context) (*Table, error)
}

// SourceIOError reports that a source could not produce rows.
type SourceIOError struct {
	Path string
	Op   string
	Err  error
}

func (e *SourceIOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SourceIOError) Unwrap() error { return e.Err }

// buildRows pairs every record with header labels. Short records are padded
// with nil cells; extra cells beyond the header are dropped.
func buildRows(header []string, records [][]string) []RawRow {
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
	return rows
}
