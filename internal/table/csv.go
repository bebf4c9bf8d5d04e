package table

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CSVSource reads a delimited text file.
type CSVSource struct {
	Path string
	// Delimiter for the file. If 0, sniffed from the header line among ',', ';', '\t'.
	Delimiter rune
}

func (s *CSVSource) Read(ctx context.Context) (*Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &SourceIOError{Path: s.Path, Op: "open csv", Err: err}
	}
	defer f.Close()

	br := bufio.NewReader(f)
	delim := s.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(s.Path, br)
	}
	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.Comma = delim

	t := &Table{Name: filepath.Base(s.Path)}
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		return nil, &SourceIOError{Path: s.Path, Op: "read header", Err: err}
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	t.Header = header

	var records [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &SourceIOError{Path: s.Path, Op: "read row", Err: err}
		}
		records = append(records, rec)
	}
	t.Rows = buildRows(header, records)
	return t, nil
}

// sniffDelimiter picks the separator that occurs most often in the first line.
// TSV files always use tab.
func sniffDelimiter(path string, br *bufio.Reader) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	peek, _ := br.Peek(4096)
	line := string(peek)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestCount := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
