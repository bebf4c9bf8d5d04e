package ingest

import (
	"errors"
	"math"
	"testing"

	"github.com/KaramelBytes/qbank-cli/internal/table"
)

func rows(header []string, recs ...[]any) []table.RawRow {
	return table.NewMemorySource("t", header, recs).Table.Rows
}

func TestResolveColumns_LooseSpellings(t *testing.T) {
	cases := []struct {
		labels []string
		theme  string
	}{
		{[]string{"Question", "Thème"}, "Thème"},
		{[]string{"question", "theme"}, "theme"},
		{[]string{"QUESTION", "Th3me"}, "Th3me"},
		{[]string{" Question ", "Thème principal"}, "Thème principal"},
		{[]string{"Question", "THÉMATIQUE"}, "THÉMATIQUE"},
		{[]string{"Question", "Catégorie"}, ""},
	}
	for _, tc := range cases {
		c, err := ResolveColumns(tc.labels)
		if err != nil {
			t.Fatalf("resolve %q: %v", tc.labels, err)
		}
		if c.Theme != tc.theme {
			t.Errorf("labels %q: theme column %q, want %q", tc.labels, c.Theme, tc.theme)
		}
		if c.Question == "" {
			t.Errorf("labels %q: question column not resolved", tc.labels)
		}
	}
}

func TestResolveColumns_QuestionIsExact(t *testing.T) {
	_, err := ResolveColumns([]string{"Questions", "Intitulé de la question", "Thème"})
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Column != QuestionColumn || len(se.Available) != 3 {
		t.Fatalf("unexpected schema error: %+v", se)
	}
}

func TestResolveColumns_OptionalFields(t *testing.T) {
	c, err := ResolveColumns([]string{"Niveau", "Question", "Format de réponse", "Thème"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.Level != "Niveau" || c.AnswerFormat != "Format de réponse" || c.Theme != "Thème" {
		t.Fatalf("unexpected columns: %+v", c)
	}
}

func TestResolveColumns_ExactLabelWins(t *testing.T) {
	c, err := ResolveColumns([]string{"Question", "Answer", "Answer format", "Thème"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.AnswerFormat != "Answer format" {
		t.Fatalf("answer text column bound as format: %+v", c)
	}

	c, err = ResolveColumns([]string{"Question", "Bonne réponse", "Level", "Sous-thème", "Thème"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.Theme != "Thème" || c.Level != "Level" || c.AnswerFormat != "" {
		t.Fatalf("unexpected columns: %+v", c)
	}

	c, err = ResolveColumns([]string{"Question", "Format de réponse", "Format"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.AnswerFormat != "Format" {
		t.Fatalf("format column %q, want %q", c.AnswerFormat, "Format")
	}

	// substring matches still apply when no label is exact
	c, err = ResolveColumns([]string{"Question", "Sous-thème"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.Theme != "Sous-thème" {
		t.Fatalf("theme column %q, want %q", c.Theme, "Sous-thème")
	}
}

func TestIngest_PreservesOrderAndRawText(t *testing.T) {
	in := rows([]string{"Question", "Thème"},
		[]any{"A?", "Histoire"},
		[]any{"A ? (Variante 2)", "Histoire"},
		[]any{"B?", "Droit"},
	)
	res, err := Ingest([]string{"Question", "Thème"}, in)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(res.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(res.Records))
	}
	for i, r := range res.Records {
		if r.SourceRowIndex != i {
			t.Fatalf("record %d has SourceRowIndex %d", i, r.SourceRowIndex)
		}
	}
	if res.Records[1].QuestionText != "A ? (Variante 2)" {
		t.Fatalf("question text must stay raw, got %q", res.Records[1].QuestionText)
	}
	if res.Records[2].Theme != "Droit" || res.Records[2].Level != "" {
		t.Fatalf("unexpected record: %+v", res.Records[2])
	}
}

func TestIngest_HeaderFromFirstRow(t *testing.T) {
	in := rows([]string{"question"}, []any{"A?"})
	res, err := Ingest(nil, in)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.Columns.Question != "question" || len(res.Records) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestIngest_NoQuestionColumn(t *testing.T) {
	in := rows([]string{"Intitulé", "Thème"}, []any{"A?", "Histoire"})
	res, err := Ingest([]string{"Intitulé", "Thème"}, in)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected no partial result")
	}
	if _, err := Ingest(nil, nil); !errors.As(err, &se) {
		t.Fatalf("expected SchemaError for empty input, got %v", err)
	}
}

func TestIngest_CoercesCells(t *testing.T) {
	header := []string{"Question", "Niveau", "Thème"}
	in := rows(header,
		[]any{"A?", 3, nil},
		[]any{"B?", 2.5, true},
		[]any{nil, math.NaN(), "Droit"},
	)
	res, err := Ingest(header, in)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.Records[0].Level != "3" || res.Records[0].Theme != "" {
		t.Fatalf("unexpected record 0: %+v", res.Records[0])
	}
	if res.Records[1].Level != "2.5" || res.Records[1].Theme != "" {
		t.Fatalf("unexpected record 1: %+v", res.Records[1])
	}
	if res.Records[2].QuestionText != "" || res.Records[2].Level != "" {
		t.Fatalf("unexpected record 2: %+v", res.Records[2])
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("expected 2 coercion warnings, got %d: %v", len(res.Warnings), res.Warnings)
	}
	if w := res.Warnings[0]; w.Row != 1 || w.Column != "Thème" {
		t.Fatalf("unexpected first warning: %+v", w)
	}
	if w := res.Warnings[1]; w.Row != 2 || w.Column != "Niveau" {
		t.Fatalf("unexpected second warning: %+v", w)
	}
}

func TestCoerce(t *testing.T) {
	cases := []struct {
		in   any
		want string
		ok   bool
	}{
		{nil, "", true},
		{"x", "x", true},
		{int64(42), "42", true},
		{uint8(7), "7", true},
		{1.0, "1", true},
		{float32(0.5), "0.5", true},
		{math.Inf(1), "", false},
		{[]string{"a"}, "", false},
	}
	for _, tc := range cases {
		got, ok := Coerce(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Coerce(%#v) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
