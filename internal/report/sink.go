package report

import (
	"context"
	"fmt"
	"io"

	"github.com/KaramelBytes/qbank-cli/internal/pipeline"
	"github.com/KaramelBytes/qbank-cli/internal/utils"
)

// WriterSink renders summaries to an io.Writer.
type WriterSink struct {
	W      io.Writer
	Format Format
}

func (s *WriterSink) Write(_ context.Context, sum *pipeline.Summary) error {
	b, err := Render(sum, s.Format)
	if err != nil {
		return err
	}
	if _, err := s.W.Write(b); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// FileSink renders a summary to a file using an atomic write.
type FileSink struct {
	Path   string
	Format Format
}

func (s *FileSink) Write(_ context.Context, sum *pipeline.Summary) error {
	b, err := Render(sum, s.Format)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(s.Path, b)
}

// MultiSink writes to every sink in order and stops at the first error.
type MultiSink []pipeline.Sink

func (m MultiSink) Write(ctx context.Context, sum *pipeline.Summary) error {
	for _, s := range m {
		if err := s.Write(ctx, sum); err != nil {
			return err
		}
	}
	return nil
}
