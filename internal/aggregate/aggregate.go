// Package aggregate computes frequency distributions over categorical record fields.
package aggregate

import (
	"sort"

	"github.com/KaramelBytes/qbank-cli/internal/question"
)

// Entry is one category value and how many records carry it.
type Entry struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Distribution counts records per category value. Entries are ordered by
// descending count; equal counts keep first-seen order.
type Distribution struct {
	Entries []Entry `json:"entries" yaml:"entries"`
	Missing int     `json:"missing" yaml:"missing"`
}

// Total returns the number of records counted, including Missing.
func (d Distribution) Total() int {
	n := d.Missing
	for _, e := range d.Entries {
		n += e.Count
	}
	return n
}

// Distinct returns the number of category values.
func (d Distribution) Distinct() int { return len(d.Entries) }

// Count returns the count for value, or 0.
func (d Distribution) Count(value string) int {
	for _, e := range d.Entries {
		if e.Value == value {
			return e.Count
		}
	}
	return 0
}

// Aggregate counts field over records. Values are compared as-is: different
// casing or spacing yields different categories. Empty values go to Missing.
func Aggregate(records []question.Record, field question.Field) Distribution {
	var d Distribution
	index := map[string]int{}
	for _, r := range records {
		v := field(r)
		if v == "" {
			d.Missing++
			continue
		}
		if i, ok := index[v]; ok {
			d.Entries[i].Count++
			continue
		}
		index[v] = len(d.Entries)
		d.Entries = append(d.Entries, Entry{Value: v, Count: 1})
	}
	sort.SliceStable(d.Entries, func(i, j int) bool {
		return d.Entries[i].Count > d.Entries[j].Count
	})
	return d
}
