package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/qbank-cli/internal/ingest"
	"github.com/KaramelBytes/qbank-cli/internal/normalize"
	"github.com/KaramelBytes/qbank-cli/internal/question"
	"github.com/KaramelBytes/qbank-cli/internal/table"
)

type captureSink struct {
	got []*Summary
	err error
}

func (c *captureSink) Write(_ context.Context, s *Summary) error {
	if c.err != nil {
		return c.err
	}
	c.got = append(c.got, s)
	return nil
}

type memStore struct {
	runID   string
	records []question.Record
}

func (m *memStore) Publish(_ context.Context, runID, _ string, records []question.Record) (PublishResult, error) {
	m.runID = runID
	m.records = records
	return PublishResult{Inserted: len(records)}, nil
}

func bankSource() *table.MemorySource {
	return table.NewMemorySource("bank.xlsx", []string{"Question", "Thème", "Niveau", "Format"}, [][]any{
		{"Quel est le rôle du Président ?", "Institutions", 1, "QCM"},
		{"Quel est le rôle du Président ? (Variante 2)", "Institutions", 2, "QCM"},
		{"Variante 1: Quelle est la capitale de la France ?", "Géographie", 1, nil},
		{"Quelle est la capitale de la France ?", "Histoire", 1, "Vrai/Faux"},
		{"", "Droit", nil, nil},
		{"Qui vote la loi ?", "", true, "QCM"},
	})
}

func TestRun_Summary(t *testing.T) {
	sink := &captureSink{}
	d := New(nil)
	s, err := d.Run(context.Background(), bankSource(), sink)
	require.NoError(t, err)
	require.Len(t, sink.got, 1)
	assert.Same(t, s, sink.got[0])

	assert.Equal(t, "bank.xlsx", s.Source)
	assert.NotEmpty(t, s.RunID)
	assert.Equal(t, 6, s.TotalRows)
	assert.Equal(t, 3, s.UniqueCount)
	assert.Equal(t, 3, s.DuplicateCount)
	assert.Equal(t, 1, s.EmptyQuestions)
	assert.Equal(t, s.TotalRows, s.UniqueCount+s.DuplicateCount)
	assert.Equal(t, 1, s.WarningCount)
	assert.Len(t, s.DuplicateSamples, 3)

	theme, ok := s.Distribution("theme")
	require.True(t, ok)
	assert.Equal(t, 1, theme.Count("Institutions"))
	assert.Equal(t, 1, theme.Count("Géographie"))
	assert.Equal(t, 0, theme.Count("Histoire"), "aggregation runs on unique records only")
	assert.Equal(t, 1, theme.Missing)

	for _, fd := range s.Distributions {
		assert.Equal(t, s.UniqueCount, fd.Distribution.Total(), fd.Field)
	}
	level, _ := s.Distribution("level")
	assert.Equal(t, 2, level.Count("1"))
	assert.Equal(t, 1, level.Missing, "unreadable cell counts as missing")
	assert.Equal(t, "Format", s.Distributions[2].Column)
}

func TestRun_SchemaErrorWritesNothing(t *testing.T) {
	src := table.NewMemorySource("bad.csv", []string{"Intitulé", "Thème"}, [][]any{{"A?", "Histoire"}})
	sink := &captureSink{}
	store := &memStore{}
	d := New(nil)
	d.Store = store
	s, err := d.Run(context.Background(), src, sink)
	var se *ingest.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Nil(t, s)
	assert.Empty(t, sink.got)
	assert.Nil(t, store.records)
}

func TestRun_SourceErrorUnchanged(t *testing.T) {
	ioErr := &table.SourceIOError{Path: "bank.csv", Op: "open csv", Err: os.ErrPermission}
	sink := &captureSink{}
	_, err := New(nil).Run(context.Background(), &table.MemorySource{Err: ioErr}, sink)
	assert.Same(t, ioErr, err)
	assert.Empty(t, sink.got)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := &captureSink{}
	_, err := New(nil).Run(ctx, bankSource(), sink)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sink.got)
}

func TestRun_PublishesCanonicalUniqueRecords(t *testing.T) {
	store := &memStore{}
	d := New(nil)
	d.Store = store
	s, err := d.Run(context.Background(), bankSource(), &captureSink{})
	require.NoError(t, err)
	require.NotNil(t, s.Published)
	assert.Equal(t, 3, s.Published.Inserted)
	assert.Equal(t, s.RunID, store.runID)

	keys := map[string]bool{}
	for _, r := range store.records {
		assert.Equal(t, normalize.Normalize(r.QuestionText), r.QuestionText)
		k := normalize.Key(r.QuestionText)
		assert.False(t, keys[k], "duplicate key %q published", k)
		keys[k] = true
	}
	assert.Equal(t, "Quelle est la capitale de la France ?", store.records[1].QuestionText)
}

func TestRun_SinkErrorSkipsPublish(t *testing.T) {
	store := &memStore{}
	d := New(nil)
	d.Store = store
	_, err := d.Run(context.Background(), bankSource(), &captureSink{err: errors.New("disk full")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write report")
	assert.Nil(t, store.records)
}

func TestRun_SampleCapsAndClock(t *testing.T) {
	fixed := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	d := &Driver{Options: Options{MaxDuplicateSamples: 1, MaxWarningSamples: 0}, now: func() time.Time { return fixed }}
	s, err := d.Run(context.Background(), bankSource(), SinkFunc(func(context.Context, *Summary) error { return nil }))
	require.NoError(t, err)
	assert.Len(t, s.DuplicateSamples, 1)
	assert.Equal(t, 3, s.DuplicateCount)
	assert.Empty(t, s.Warnings)
	assert.Equal(t, 1, s.WarningCount)
	assert.Equal(t, fixed, s.StartedAt)
	assert.Equal(t, fixed, s.FinishedAt)
}

func TestRun_IndependentConcurrentRuns(t *testing.T) {
	d := New(nil)
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			s, err := d.Run(context.Background(), bankSource(), &captureSink{})
			if err == nil && s.UniqueCount != 3 {
				err = errors.New("unexpected unique count")
			}
			errs <- err
		}()
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, <-errs)
	}
}
