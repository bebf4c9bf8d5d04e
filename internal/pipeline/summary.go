package pipeline

import (
	"time"

	"github.com/KaramelBytes/qbank-cli/internal/aggregate"
	"github.com/KaramelBytes/qbank-cli/internal/dedup"
	"github.com/KaramelBytes/qbank-cli/internal/ingest"
)

// FieldDistribution is the distribution of one categorical field over the
// unique records.
type FieldDistribution struct {
	Field        string                 `json:"field" yaml:"field"`
	Column       string                 `json:"column,omitempty" yaml:"column,omitempty"`
	Distribution aggregate.Distribution `json:"distribution" yaml:"distribution"`
}

// Summary is everything a reviewer needs to judge one import run.
type Summary struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	Source     string    `json:"source" yaml:"source"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	TotalRows      int `json:"total_rows" yaml:"total_rows"`
	UniqueCount    int `json:"unique_count" yaml:"unique_count"`
	DuplicateCount int `json:"duplicate_count" yaml:"duplicate_count"`
	// EmptyQuestions is the share of DuplicateCount with no usable text.
	EmptyQuestions int `json:"empty_questions" yaml:"empty_questions"`

	WarningCount int                      `json:"warning_count" yaml:"warning_count"`
	Warnings     []ingest.CoercionWarning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	Distributions []FieldDistribution `json:"distributions" yaml:"distributions"`

	// DuplicateSamples lists the first duplicates, capped; DuplicateCount is exact.
	DuplicateSamples []dedup.Duplicate `json:"duplicate_samples,omitempty" yaml:"duplicate_samples,omitempty"`

	// Published is set once unique records were handed to a store.
	Published *PublishResult `json:"published,omitempty" yaml:"published,omitempty"`
}

// PublishResult reports what a RecordStore accepted.
type PublishResult struct {
	Inserted int `json:"inserted" yaml:"inserted"`
	Skipped  int `json:"skipped" yaml:"skipped"`
}

// Distribution returns the distribution for field, if present.
func (s *Summary) Distribution(field string) (aggregate.Distribution, bool) {
	for _, fd := range s.Distributions {
		if fd.Field == field {
			return fd.Distribution, true
		}
	}
	return aggregate.Distribution{}, false
}
