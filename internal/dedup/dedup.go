// Package dedup partitions question records into unique and duplicate sets by canonical key.
package dedup

import (
	"github.com/KaramelBytes/qbank-cli/internal/normalize"
	"github.com/KaramelBytes/qbank-cli/internal/question"
)

// Duplicate is a record whose canonical key was already taken.
type Duplicate struct {
	question.Record `yaml:",inline"`
	// Key is the colliding canonical key; empty for rows with no usable text.
	Key string `json:"key" yaml:"key"`
	// FirstRow is the SourceRowIndex of the record that first produced Key, or -1.
	FirstRow int `json:"first_row" yaml:"first_row"`
}

// Result is a stable partition of the input sequence.
type Result struct {
	Unique     []question.Record
	Duplicates []Duplicate
}

// Total returns the number of partitioned records.
func (r Result) Total() int { return len(r.Unique) + len(r.Duplicates) }

// EmptyCount returns how many duplicates were classified for having no text.
func (r Result) EmptyCount() int {
	n := 0
	for _, d := range r.Duplicates {
		if d.Key == "" {
			n++
		}
	}
	return n
}

// Deduplicate keeps the first record for every canonical key. A record whose
// text is empty after normalization is always a duplicate. Both output slices
// keep input order.
func Deduplicate(records []question.Record) Result {
	seen := make(map[string]int, len(records))
	res := Result{Unique: make([]question.Record, 0, len(records))}
	for _, rec := range records {
		key := normalize.Key(rec.QuestionText)
		if key == "" {
			res.Duplicates = append(res.Duplicates, Duplicate{Record: rec, FirstRow: -1})
			continue
		}
		if first, ok := seen[key]; ok {
			res.Duplicates = append(res.Duplicates, Duplicate{Record: rec, Key: key, FirstRow: first})
			continue
		}
		seen[key] = rec.SourceRowIndex
		res.Unique = append(res.Unique, rec)
	}
	return res
}
