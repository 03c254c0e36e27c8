package extract

import (
	"reflect"
	"testing"

	"github.com/naretakis/mita-open-blueprint/internal/pdfdoc"
)

func TestBCMColumn(t *testing.T) {
	tests := []struct {
		x      float64
		want   int
		wantOK bool
	}{
		{100, 0, true},  // question column
		{0, 0, true},    // left edge
		{209, 1, true},  // level 1
		{313, 2, true},  // level 2
		{429, 3, true},  // level 3
		{545, 4, true},  // level 4
		{649, 5, true},  // level 5
		{799, 5, true},  // right edge of level 5
		{800, 0, false}, // past the table
		{-1, 0, false},
	}

	for _, tt := range tests {
		got, ok := bcmColumn(tt.x)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("bcmColumn(%v) = (%d, %v), want (%d, %v)", tt.x, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStartsQuestion(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Is the case record established manually?", true},
		{"How is data shared?", true},
		{"What triggers the process?", true},
		{"Does the process meet standards?", true},
		{"Are the results timely?", true},
		{"Can members access the portal?", true},
		{"Will the agency automate?", true},
		{"The process is manual.", false},
		{"Island operations", false}, // "Is " requires the trailing space
	}

	for _, tt := range tests {
		if got := startsQuestion(tt.text); got != tt.want {
			t.Errorf("startsQuestion(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestFindBCMStarts(t *testing.T) {
	lines := []pdfdoc.Line{
		{Text: "Business Capability Matrix Details", Page: 1},
		{Text: "Part I, Appendix D", Page: 1},
		{Text: "Establish Case", Page: 2},
		{Text: "CM – Case Management", Page: 2},
		{Text: "Capability", Page: 2},
		{Text: "Question", Page: 2},
		{Text: "Is the case record established manually?", Page: 2},
		{Text: "Level 1", Page: 2},
		{Text: "Case Management", Page: 3}, // category header, not a process
		{Text: "Manage Case Information", Page: 4},
		{Text: "CM – Case Management", Page: 4},
	}

	starts := findBCMStarts(lines, "CM")
	if len(starts) != 2 {
		t.Fatalf("findBCMStarts() found %d processes, want 2", len(starts))
	}

	if starts[0].name != "Establish Case" {
		t.Errorf("starts[0].name = %q, want Establish Case", starts[0].name)
	}
	if starts[0].subCategory != "CM – Case Management" {
		t.Errorf("starts[0].subCategory = %q", starts[0].subCategory)
	}
	if starts[0].startPage != 2 {
		t.Errorf("starts[0].startPage = %d, want 2", starts[0].startPage)
	}
	if starts[1].name != "Manage Case Information" {
		t.Errorf("starts[1].name = %q", starts[1].name)
	}
}

func TestCleanBCMSubCategory(t *testing.T) {
	tests := []struct {
		banner string
		area   string
		want   string
	}{
		{"CM – Case Management", "Care Management", "Case Management"},
		{"FM – Accounts Payable Management", "Financial Management", "Accounts Payable Management"},
		{"CM Case Management", "Care Management", "Case Management"},
		{"", "Care Management", "Care Management"},
	}

	for _, tt := range tests {
		if got := cleanBCMSubCategory(tt.banner, tt.area); got != tt.want {
			t.Errorf("cleanBCMSubCategory(%q) = %q, want %q", tt.banner, got, tt.want)
		}
	}
}

func levelsRow(question string, level int, text string) bcmRow {
	row := bcmRow{question: question}
	if level >= 1 && level <= 5 {
		row.levels[level] = []string{text}
	}
	return row
}

func TestBCMTableParser(t *testing.T) {
	p := newBCMTableParser("Establish Case")

	rows := []bcmRow{
		{question: "Capability Question"}, // table header
		{question: "Business Capability Descriptions"},
		levelsRow("Is the case record established", 1, "Manual process."),
		levelsRow("manually?", 1, "Paper files."),
		{question: "NOTE: Applies to all states."},
		levelsRow("How is data shared?", 2, "Via EDI."),
		{question: "Business Capability Quality: Timeliness of Process"},
		levelsRow("Does the process meet timeliness standards?", 3, "Within 30 days."),
		{question: "Manage Case Information"}, // next process banner
		levelsRow("Will never be parsed?", 1, "unreachable"),
	}

	stopped := false
	for _, row := range rows {
		if p.consume(row) {
			stopped = true
			break
		}
	}
	p.finish()

	if !stopped {
		t.Error("parser did not stop at the next process banner")
	}
	if len(p.questions) != 3 {
		t.Fatalf("parsed %d questions, want 3", len(p.questions))
	}

	q1 := p.questions[0]
	if q1.Question != "Is the case record established manually?" {
		t.Errorf("q1.Question = %q", q1.Question)
	}
	if q1.Category != "Business Capability Descriptions" {
		t.Errorf("q1.Category = %q", q1.Category)
	}
	if q1.Levels.Level1 != "Manual process. Paper files." {
		t.Errorf("q1.Level1 = %q", q1.Levels.Level1)
	}
	if q1.Note != "Applies to all states." {
		t.Errorf("q1.Note = %q", q1.Note)
	}

	q2 := p.questions[1]
	if q2.Question != "How is data shared?" {
		t.Errorf("q2.Question = %q", q2.Question)
	}
	if q2.Levels.Level2 != "Via EDI." {
		t.Errorf("q2.Level2 = %q", q2.Levels.Level2)
	}
	if q2.Category != "Business Capability Descriptions" {
		t.Errorf("q2.Category = %q", q2.Category)
	}

	q3 := p.questions[2]
	if q3.Category != "Business Capability Quality: Timeliness of Process" {
		t.Errorf("q3.Category = %q", q3.Category)
	}
	if q3.Levels.Level3 != "Within 30 days." {
		t.Errorf("q3.Level3 = %q", q3.Levels.Level3)
	}
}

func TestBCMTableParserStripsHeaderPrefix(t *testing.T) {
	p := newBCMTableParser("Establish Case")

	p.consume(levelsRow("Capability Question Is the process automated?", 1, "No automation."))
	p.finish()

	if len(p.questions) != 1 {
		t.Fatalf("parsed %d questions, want 1", len(p.questions))
	}
	if p.questions[0].Question != "Is the process automated?" {
		t.Errorf("Question = %q, want header prefix stripped", p.questions[0].Question)
	}
}

func TestFormatBCMLevelText(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{
			name:  "joins fragments",
			parts: []string{"Manual process", "with paper files."},
			want:  "Manual process with paper files.",
		},
		{
			name:  "note on own line",
			parts: []string{"Manual process.", "NOTE: Varies by state."},
			want:  "Manual process.\nNOTE: Varies by state.",
		},
		{
			name:  "empty",
			parts: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatBCMLevelText(tt.parts); got != tt.want {
				t.Errorf("formatBCMLevelText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCapabilityQuestionsFromLines(t *testing.T) {
	lines := []string{
		"Business Capability Descriptions",
		"Is the case record established manually?",
		"Manual process with paper files.",
	}

	questions := parseCapabilityQuestionsFromLines(lines)
	if len(questions) != 1 {
		t.Fatalf("parsed %d questions, want 1", len(questions))
	}
	q := questions[0]
	if q.Question != "Is the case record established manually?" {
		t.Errorf("Question = %q", q.Question)
	}
	if q.Category != "Business Capability Descriptions" {
		t.Errorf("Category = %q", q.Category)
	}
	if q.Levels.Level1 != "Manual process with paper files." {
		t.Errorf("Level1 = %q", q.Levels.Level1)
	}
}

func TestBCMRowHasLevelContent(t *testing.T) {
	var empty bcmRow
	if empty.hasLevelContent() {
		t.Error("empty row should have no level content")
	}

	row := levelsRow("", 5, "text")
	if !row.hasLevelContent() {
		t.Error("row with level 5 text should have level content")
	}
	if !reflect.DeepEqual(row.levels[5], []string{"text"}) {
		t.Errorf("levels[5] = %v", row.levels[5])
	}
}
