package aggregate

import (
	"testing"

	"github.com/KaramelBytes/qbank-cli/internal/question"
)

func themed(themes ...string) []question.Record {
	out := make([]question.Record, len(themes))
	for i, th := range themes {
		out[i] = question.Record{QuestionText: "q", Theme: th, SourceRowIndex: i}
	}
	return out
}

func TestAggregate_ThemeExample(t *testing.T) {
	d := Aggregate(themed("Histoire", "Histoire", "Droit", ""), question.Theme)
	if len(d.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", d.Entries)
	}
	if d.Entries[0] != (Entry{"Histoire", 2}) || d.Entries[1] != (Entry{"Droit", 1}) {
		t.Fatalf("unexpected entries: %+v", d.Entries)
	}
	if d.Missing != 1 {
		t.Fatalf("expected missing 1, got %d", d.Missing)
	}
	if d.Total() != 4 {
		t.Fatalf("expected total 4, got %d", d.Total())
	}
}

func TestAggregate_TiesKeepFirstSeenOrder(t *testing.T) {
	d := Aggregate(themed("Droit", "Arts", "Sciences", "Arts", "Droit", "Sciences", "Zoologie"), question.Theme)
	want := []string{"Droit", "Arts", "Sciences", "Zoologie"}
	for i, w := range want {
		if d.Entries[i].Value != w {
			t.Fatalf("entry %d = %q, want %q (all: %+v)", i, d.Entries[i].Value, w, d.Entries)
		}
	}
}

func TestAggregate_NoValueNormalization(t *testing.T) {
	d := Aggregate(themed("Histoire", "histoire", "Histoire ", "Histoire"), question.Theme)
	if d.Distinct() != 3 {
		t.Fatalf("expected 3 distinct categories, got %+v", d.Entries)
	}
	if d.Count("Histoire") != 2 || d.Count("histoire") != 1 || d.Count("absent") != 0 {
		t.Fatalf("unexpected counts: %+v", d.Entries)
	}
}

func TestAggregate_FieldAgnosticAndTotals(t *testing.T) {
	in := []question.Record{
		{Level: "1", AnswerFormat: "QCM"},
		{Level: "2"},
		{Level: "1", AnswerFormat: "Vrai/Faux"},
		{},
	}
	for _, f := range question.CategoryFields() {
		d := Aggregate(in, f.Get)
		if d.Total() != len(in) {
			t.Fatalf("%s: total %d != %d", f.Name, d.Total(), len(in))
		}
	}
	lv := Aggregate(in, question.Level)
	if lv.Count("1") != 2 || lv.Missing != 1 {
		t.Fatalf("unexpected level distribution: %+v", lv)
	}
	af := Aggregate(in, question.AnswerFormat)
	if af.Missing != 2 || af.Distinct() != 2 {
		t.Fatalf("unexpected format distribution: %+v", af)
	}
}

func TestAggregate_Empty(t *testing.T) {
	d := Aggregate(nil, question.Theme)
	if d.Total() != 0 || d.Entries != nil {
		t.Fatalf("expected empty distribution, got %+v", d)
	}
}
