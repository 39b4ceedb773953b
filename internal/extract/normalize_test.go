package extract

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		spec FieldSpec
		want string
	}{
		{
			name: "trims and collapses blank lines",
			raw:  "  First line  \n\n\n  Second line \n",
			want: "First line\nSecond line",
		},
		{
			name: "forced keyword gains colon mid line",
			raw:  "Test Score 51",
			spec: FieldSpec{ForcedKeywords: []string{"Test Score"}},
			want: "Test Score: 51",
		},
		{
			name: "forced keyword at line end gains colon",
			raw:  "Subtotal\n42",
			spec: FieldSpec{ForcedKeywords: []string{"Subtotal"}},
			want: "Subtotal:\n42",
		},
		{
			name: "forced keyword already keyed stays put",
			raw:  "Test Score: 51",
			spec: FieldSpec{ForcedKeywords: []string{"Test Score"}},
			want: "Test Score: 51",
		},
		{
			name: "forced keyword repeated on one line",
			raw:  "Score 1 Score 2",
			spec: FieldSpec{ForcedKeywords: []string{"Score"}},
			want: "Score: 1 Score: 2",
		},
		{
			name: "remove colon after keyword",
			raw:  "Chapter: One",
			spec: FieldSpec{RemoveColonAfter: []string{"Chapter"}},
			want: "Chapter One",
		},
		{
			name: "break removed before word",
			raw:  "Total\nDue: 10",
			spec: FieldSpec{RemoveBreaksBefore: []string{"Due:"}},
			want: "Total Due: 10",
		},
		{
			name: "break removed after word",
			raw:  "Name:\nJane",
			spec: FieldSpec{RemoveBreaksAfter: []string{"Name:"}},
			want: "Name: Jane",
		},
		{
			name: "empty input stays empty",
			raw:  "   \n  ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeText(tt.raw, &tt.spec)
			if got != tt.want {
				t.Errorf("normalizeText(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	spec := FieldSpec{
		ForcedKeywords:     []string{"Test Score"},
		RemoveBreaksBefore: []string{"continued"},
		RemoveBreaksAfter:  []string{"Name:"},
	}
	raw := "Test Score 51\nName:\nJane\nline one\ncontinued here"

	once := normalizeText(raw, &spec)
	twice := normalizeText(once, &spec)
	if once != twice {
		t.Errorf("normalization not idempotent:\nonce  = %q\ntwice = %q", once, twice)
	}
}

func TestPromoteKeywordQuirks(t *testing.T) {
	tests := []struct {
		name string
		line string
		kw   string
		want string
	}{
		{
			name: "single space before colon keeps keyword",
			line: "Total :",
			kw:   "Total",
			want: "Total :",
		},
		{
			name: "line of only keyword",
			line: "Total",
			kw:   "Total",
			want: "Total: ",
		},
		{
			name: "keyword not present",
			line: "Nothing here",
			kw:   "Total",
			want: "Nothing here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := promoteKeyword(tt.line, tt.kw); got != tt.want {
				t.Errorf("promoteKeyword(%q, %q) = %q, want %q", tt.line, tt.kw, got, tt.want)
			}
		})
	}
}
