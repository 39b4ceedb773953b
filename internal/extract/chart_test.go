package extract

import (
	"testing"
)

func chartSpec(top, left bool, priority string) *FieldSpec {
	spec := &FieldSpec{
		FieldName:    "Grades (Chart)",
		StartKeyword: "Grades",
		TopTitle:     top,
		LeftTitle:    left,
		PrioritySide: priority,
	}
	spec.ApplyDefaults()
	return spec
}

func TestSplitChartColumnsPadsToRectangle(t *testing.T) {
	text := "Subject\nMath\nScience" +
		AdditionalDataSeparator +
		"Grade\nA"
	columns := splitChartColumns(text)

	if len(columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(columns))
	}
	if len(columns[0]) != len(columns[1]) {
		t.Fatalf("column lengths differ: %d vs %d", len(columns[0]), len(columns[1]))
	}
	if columns[1][2] != "" {
		t.Errorf("padded cell = %q, want empty string", columns[1][2])
	}
}

func TestSplitChartColumnsSkipsBlankBlocks(t *testing.T) {
	text := "one" + AdditionalDataSeparator + "   \n  " + AdditionalDataSeparator + "two"
	columns := splitChartColumns(text)
	if len(columns) != 2 {
		t.Errorf("columns = %d, want blank block dropped", len(columns))
	}
}

func TestStructureChartTopTitle(t *testing.T) {
	columns := [][]string{
		{"Subject", "Math", "Science"},
		{"Grade", "A", "B"},
	}
	got := structureChart(columns, chartSpec(true, false, "top"))
	want := `{"Subject":["Math","Science"],"Grade":["A","B"]}`
	if s := parsedJSON(t, got); s != want {
		t.Errorf("parsed = %s, want %s", s, want)
	}
}

func TestStructureChartLeftTitle(t *testing.T) {
	columns := [][]string{
		{"Math", "Science"},
		{"A", "B"},
		{"1", "2"},
	}
	got := structureChart(columns, chartSpec(false, true, "top"))
	want := `{"Math":["A","1"],"Science":["B","2"]}`
	if s := parsedJSON(t, got); s != want {
		t.Errorf("parsed = %s, want %s", s, want)
	}
}

func TestStructureChartLeftTitleSingleValueCollapses(t *testing.T) {
	columns := [][]string{
		{"Math", "Science"},
		{"A", "B"},
	}
	got := structureChart(columns, chartSpec(false, true, "top"))
	want := `{"Math":"A","Science":"B"}`
	if s := parsedJSON(t, got); s != want {
		t.Errorf("parsed = %s, want %s", s, want)
	}
}

func TestStructureChartBothTopPriority(t *testing.T) {
	columns := [][]string{
		{"Report", "Math", "Science"},
		{"Grade", "A", "B"},
	}
	got := structureChart(columns, chartSpec(true, true, "top"))
	want := `{"Report":{"Grade":{"Math":"A","Science":"B"}}}`
	if s := parsedJSON(t, got); s != want {
		t.Errorf("parsed = %s, want %s", s, want)
	}
}

func TestStructureChartBothLeftPriority(t *testing.T) {
	columns := [][]string{
		{"Report", "Math", "Science"},
		{"Grade", "A", "B"},
	}
	got := structureChart(columns, chartSpec(true, true, "left"))
	want := `{"Report":[{"Math":[{"Grade":"A"}],"Science":[{"Grade":"B"}]}]}`
	if s := parsedJSON(t, got); s != want {
		t.Errorf("parsed = %s, want %s", s, want)
	}
}

func TestStructureChartNoTitles(t *testing.T) {
	columns := [][]string{
		{"a1", "a2"},
		{"b1", "b2"},
	}
	got := structureChart(columns, chartSpec(false, false, "top"))
	want := `{"Data":[{"Column 1":"a1","Column 2":"b1"},{"Column 1":"a2","Column 2":"b2"}]}`
	if s := parsedJSON(t, got); s != want {
		t.Errorf("parsed = %s, want %s", s, want)
	}
}

func TestStructureChartEmptyColumns(t *testing.T) {
	got := structureChart(nil, chartSpec(true, false, "top"))
	if got.Len() != 0 {
		t.Errorf("parsed = %s, want empty", parsedJSON(t, got))
	}
}
