// Package report renders run summaries for human review and downstream storage.
package report

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/qbank-cli/internal/pipeline"
	"github.com/KaramelBytes/qbank-cli/internal/utils"
)

// Format selects how a summary is rendered.
type Format string

const (
	Markdown Format = "markdown"
	JSON     Format = "json"
	YAML     Format = "yaml"
)

// ParseFormat accepts the names used on the command line and in config.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return Markdown, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s (use markdown|json|yaml)", s)
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	switch f {
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	default:
		return ".md"
	}
}

// Render encodes s in format f.
func Render(s *pipeline.Summary, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return utils.PrettyJSON(s)
	case YAML:
		b, err := yaml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	case Markdown, "":
		return []byte(RenderMarkdown(s)), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", f)
	}
}

// RenderMarkdown returns a compact, reviewer-oriented text summary.
func RenderMarkdown(s *pipeline.Summary) string {
	var b strings.Builder
	b.WriteString("[IMPORT SUMMARY]\n")
	if s.Source != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", s.Source))
	}
	b.WriteString(fmt.Sprintf("Run: %s\n", s.RunID))
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.TotalRows))
	b.WriteString(fmt.Sprintf("Unique: %d\n", s.UniqueCount))
	b.WriteString(fmt.Sprintf("Duplicates: %d", s.DuplicateCount))
	if s.EmptyQuestions > 0 {
		b.WriteString(fmt.Sprintf(" (%d without question text)", s.EmptyQuestions))
	}
	b.WriteString("\n")
	if s.Published != nil {
		b.WriteString(fmt.Sprintf("Stored: %d new, %d already present\n", s.Published.Inserted, s.Published.Skipped))
	}
	b.WriteString("\n")

	b.WriteString("[DISTRIBUTIONS]\n")
	for _, fd := range s.Distributions {
		d := fd.Distribution
		label := fd.Field
		if fd.Column != "" {
			label = fmt.Sprintf("%s (column %q)", fd.Field, fd.Column)
		} else {
			label += " (column not found)"
		}
		b.WriteString(fmt.Sprintf("- %s: %d distinct, missing %d", label, d.Distinct(), d.Missing))
		if total := d.Total(); total > 0 {
			b.WriteString(fmt.Sprintf(" (%.1f%%)", float64(d.Missing)*100.0/float64(total)))
		}
		b.WriteString("\n")
		for _, e := range d.Entries {
			b.WriteString(fmt.Sprintf("  - %s: %d\n", safeVal(e.Value), e.Count))
		}
	}
	b.WriteString("\n")

	if s.DuplicateCount > 0 {
		b.WriteString("[DUPLICATES]\n")
		b.WriteString("| row | first row | question |\n|---|---|---|\n")
		for _, dup := range s.DuplicateSamples {
			first := "-"
			if dup.FirstRow >= 0 {
				first = fmt.Sprintf("%d", dup.FirstRow+1)
			}
			text := dup.QuestionText
			if strings.TrimSpace(text) == "" {
				text = "(empty)"
			}
			b.WriteString(fmt.Sprintf("| %d | %s | %s |\n", dup.SourceRowIndex+1, first, safeVal(text)))
		}
		if n := s.DuplicateCount - len(s.DuplicateSamples); n > 0 {
			b.WriteString(fmt.Sprintf("… %d more\n", n))
		}
		b.WriteString("\n")
	}

	if s.WarningCount > 0 {
		b.WriteString("[WARNINGS]\n")
		for _, w := range s.Warnings {
			b.WriteString("- " + w.String() + "\n")
		}
		if n := s.WarningCount - len(s.Warnings); n > 0 {
			b.WriteString(fmt.Sprintf("- … %d more unreadable cells\n", n))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
