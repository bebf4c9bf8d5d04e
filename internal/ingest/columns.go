package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// QuestionColumn is the label of the required question-text column.
const QuestionColumn = "Question"

// Accepted spellings, already folded: "Thème" and "THÉMATIQUE" reach them
// through fold. A label equal to a spelling beats one that only contains it.
var (
	themeSpellings  = []string{"theme", "th3me", "thematique"}
	levelSpellings  = []string{"niveau", "level", "difficulte"}
	formatSpellings = []string{"format", "answer format", "answer type", "type de reponse"}
)

// Columns maps record fields to the header labels they are read from. An
// empty label means the column is absent.
type Columns struct {
	Question     string
	Theme        string
	Level        string
	AnswerFormat string
}

// ResolveColumns finds the source column for each record field. Only the
// question column is required.
func ResolveColumns(labels []string) (Columns, error) {
	var c Columns
	for _, l := range labels {
		if strings.EqualFold(strings.TrimSpace(l), "question") {
			c.Question = l
			break
		}
	}
	if c.Question == "" {
		return Columns{}, &SchemaError{Column: QuestionColumn, Available: append([]string(nil), labels...)}
	}
	used := map[string]bool{c.Question: true}
	c.Theme = firstMatch(labels, themeSpellings, used)
	c.Level = firstMatch(labels, levelSpellings, used)
	c.AnswerFormat = firstMatch(labels, formatSpellings, used)
	return c, nil
}

func firstMatch(labels, spellings []string, used map[string]bool) string {
	for _, exact := range []bool{true, false} {
		for _, l := range labels {
			if l == "" || used[l] {
				continue
			}
			folded := fold(l)
			for _, sp := range spellings {
				if (exact && folded == sp) || (!exact && strings.Contains(folded, sp)) {
					used[l] = true
					return l
				}
			}
		}
	}
	return ""
}

// fold lower-cases s and strips combining marks, so "Thème" and "THEME" compare equal.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
