// Package pipeline runs ingestion, deduplication and aggregation over one table.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KaramelBytes/qbank-cli/internal/aggregate"
	"github.com/KaramelBytes/qbank-cli/internal/dedup"
	"github.com/KaramelBytes/qbank-cli/internal/ingest"
	"github.com/KaramelBytes/qbank-cli/internal/logging"
	"github.com/KaramelBytes/qbank-cli/internal/normalize"
	"github.com/KaramelBytes/qbank-cli/internal/question"
	"github.com/KaramelBytes/qbank-cli/internal/table"
)

// Sink receives the summary of a successful run.
type Sink interface {
	Write(ctx context.Context, s *Summary) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, s *Summary) error

func (f SinkFunc) Write(ctx context.Context, s *Summary) error { return f(ctx, s) }

// RecordStore accepts the unique, normalized records of a run.
type RecordStore interface {
	Publish(ctx context.Context, runID, source string, records []question.Record) (PublishResult, error)
}

// Options tunes the summary.
type Options struct {
	// MaxDuplicateSamples caps Summary.DuplicateSamples. 0 means none, <0 unlimited.
	MaxDuplicateSamples int
	// MaxWarningSamples caps Summary.Warnings. 0 means none, <0 unlimited.
	MaxWarningSamples int
}

// DefaultOptions returns the caps used by the CLI.
func DefaultOptions() Options {
	return Options{MaxDuplicateSamples: 50, MaxWarningSamples: 20}
}

// Driver orchestrates a run. It holds configuration only; all per-run state
// lives inside Run, so one Driver can serve concurrent runs.
type Driver struct {
	Logger  *zap.Logger
	Options Options
	// Store is optional. When set, unique records are published after the
	// summary has been written.
	Store RecordStore

	now func() time.Time
}

// New returns a Driver with default options.
func New(logger *zap.Logger) *Driver {
	return &Driver{Logger: logging.OrNop(logger), Options: DefaultOptions()}
}

// Run reads src, deduplicates and aggregates its rows and writes the summary
// to sink. Source errors are returned unchanged; a schema error or a
// cancelled context aborts the run before anything reaches sink.
func (d *Driver) Run(ctx context.Context, src table.Source, sink Sink) (*Summary, error) {
	log := logging.OrNop(d.Logger)
	now := d.now
	if now == nil {
		now = time.Now
	}
	s := &Summary{RunID: uuid.NewString(), StartedAt: now()}

	tbl, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	s.Source = tbl.Name
	log = log.With(zap.String("run_id", s.RunID), zap.String("source", s.Source))
	log.Debug("table read", zap.Int("rows", len(tbl.Rows)), zap.Strings("header", tbl.Header))

	in, err := ingest.Ingest(tbl.Header, tbl.Rows)
	if err != nil {
		log.Error("ingest failed", zap.Error(err))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Info("ingested",
		zap.Int("records", len(in.Records)),
		zap.Int("warnings", len(in.Warnings)),
		zap.String("question_column", in.Columns.Question),
		zap.String("theme_column", in.Columns.Theme),
	)

	dd := dedup.Deduplicate(in.Records)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Info("deduplicated", zap.Int("unique", len(dd.Unique)), zap.Int("duplicates", len(dd.Duplicates)))

	s.TotalRows = len(in.Records)
	s.UniqueCount = len(dd.Unique)
	s.DuplicateCount = len(dd.Duplicates)
	s.EmptyQuestions = dd.EmptyCount()
	s.WarningCount = len(in.Warnings)
	s.Warnings = capSlice(in.Warnings, d.Options.MaxWarningSamples)
	s.DuplicateSamples = capSlice(dd.Duplicates, d.Options.MaxDuplicateSamples)

	columns := map[string]string{"theme": in.Columns.Theme, "level": in.Columns.Level, "answer_format": in.Columns.AnswerFormat}
	for _, f := range question.CategoryFields() {
		s.Distributions = append(s.Distributions, FieldDistribution{
			Field:        f.Name,
			Column:       columns[f.Name],
			Distribution: aggregate.Aggregate(dd.Unique, f.Get),
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.FinishedAt = now()

	if err := sink.Write(ctx, s); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	log.Debug("report written")

	if d.Store != nil {
		res, err := d.Store.Publish(ctx, s.RunID, s.Source, Canonical(dd.Unique))
		if err != nil {
			return s, fmt.Errorf("publish records: %w", err)
		}
		s.Published = &res
		log.Info("published", zap.Int("inserted", res.Inserted), zap.Int("skipped", res.Skipped))
	}
	return s, nil
}

// Canonical returns copies of records with normalized question text, the
// form handed to a datastore.
func Canonical(records []question.Record) []question.Record {
	out := make([]question.Record, len(records))
	for i, r := range records {
		r.QuestionText = normalize.Normalize(r.QuestionText)
		out[i] = r
	}
	return out
}

func capSlice[T any](in []T, limit int) []T {
	if limit < 0 || len(in) <= limit {
		return in
	}
	if limit == 0 {
		return nil
	}
	return in[:limit]
}
