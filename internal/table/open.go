package table

import (
	"errors"
	"path/filepath"
	"strings"
)

// Options configures sources created by Open.
type Options struct {
	Delimiter  rune
	SheetName  string
	SheetIndex int
}

// Opener builds a Source for the file types it recognises.
type Opener interface {
	CanOpen(filename string) bool
	Open(path string, opt Options) Source
}

var registry []Opener

// Register adds an opener to the registry.
func Register(o Opener) {
	registry = append(registry, o)
}

// ErrUnsupported indicates no registered opener handles the file.
var ErrUnsupported = errors.New("unsupported table format")

// Open selects a source based on the file extension.
func Open(path string, opt Options) (Source, error) {
	for _, o := range registry {
		if o.CanOpen(path) {
			return o.Open(path, opt), nil
		}
	}
	return nil, &SourceIOError{Path: path, Op: "open", Err: ErrUnsupported}
}

type csvOpener struct{}

func (csvOpener) CanOpen(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".csv" || ext == ".tsv" || ext == ".txt"
}

func (csvOpener) Open(path string, opt Options) Source {
	return &CSVSource{Path: path, Delimiter: opt.Delimiter}
}

type xlsxOpener struct{}

func (xlsxOpener) CanOpen(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".xlsx" || ext == ".xlsm"
}

func (xlsxOpener) Open(path string, opt Options) Source {
	return &XLSXSource{Path: path, SheetName: opt.SheetName, SheetIndex: opt.SheetIndex}
}

func init() {
	Register(csvOpener{})
	Register(xlsxOpener{})
}
