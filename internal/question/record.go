package question

// Record is one question row taken from an imported table.
type Record struct {
	QuestionText   string `json:"question_text" yaml:"question_text"`
	Theme          string `json:"theme,omitempty" yaml:"theme,omitempty"`
	Level          string `json:"level,omitempty" yaml:"level,omitempty"`
	AnswerFormat   string `json:"answer_format,omitempty" yaml:"answer_format,omitempty"`
	SourceRowIndex int    `json:"source_row_index" yaml:"source_row_index"`
}

// Field selects one categorical attribute of a Record.
type Field func(Record) string

// Theme returns r.Theme.
func Theme(r Record) string { return r.Theme }

// Level returns r.Level.
func Level(r Record) string { return r.Level }

// AnswerFormat returns r.AnswerFormat.
func AnswerFormat(r Record) string { return r.AnswerFormat }

// NamedField pairs an accessor with the label used in reports.
type NamedField struct {
	Name string
	Get  Field
}

// CategoryFields lists the attributes summarized for every run, in report order.
func CategoryFields() []NamedField {
	return []NamedField{
		{Name: "theme", Get: Theme},
		{Name: "level", Get: Level},
		{Name: "answer_format", Get: AnswerFormat},
	}
}
