package extract

import (
	"fmt"
	"strings"
)

// splitChartColumns turns a chart field's accumulated text into columns,
// one per merged text block, padded with empty cells into a rectangle so
// ragged blocks still line up row by row.
func splitChartColumns(text string) [][]string {
	var columns [][]string
	for _, section := range strings.Split(text, AdditionalDataSeparator) {
		lines := nonBlankLines(section)
		if len(lines) == 0 {
			continue
		}
		columns = append(columns, lines)
	}
	maxLen := 0
	for _, col := range columns {
		if len(col) > maxLen {
			maxLen = len(col)
		}
	}
	for i, col := range columns {
		for len(col) < maxLen {
			col = append(col, "")
		}
		columns[i] = col
	}
	return columns
}

// structureChart shapes chart columns according to the spec's title flags.
// With a top title each column's first cell names the column; with a left
// title the first column names the rows; with both, priority_side picks
// which side becomes the outer nesting level.
func structureChart(columns [][]string, spec *FieldSpec) *ParsedData {
	result := NewParsedData()
	if len(columns) == 0 {
		return result
	}
	switch {
	case spec.TopTitle && spec.LeftTitle:
		structureChartBoth(result, columns, spec)
	case spec.TopTitle:
		for _, col := range columns {
			result.Set(col[0], col[1:])
		}
	case spec.LeftTitle:
		structureChartLeft(result, columns)
	default:
		structureChartRows(result, columns)
	}
	return result
}

// structureChartLeft keys each row by the first column's cell and collects
// the row's cells from the remaining columns.
func structureChartLeft(result *ParsedData, columns [][]string) {
	for i, key := range columns[0] {
		if strings.TrimSpace(key) == "" {
			continue
		}
		var values []string
		for j := 1; j < len(columns); j++ {
			if i < len(columns[j]) {
				values = append(values, columns[j][i])
			}
		}
		switch len(values) {
		case 0:
			result.Set(key, "")
		case 1:
			result.Set(key, values[0])
		default:
			result.Set(key, values)
		}
	}
}

// structureChartBoth nests the chart under the first column's header cell.
// With top priority the outer keys are the column headers; with left
// priority the outer keys are the row labels.
func structureChartBoth(result *ParsedData, columns [][]string, spec *FieldSpec) {
	rowKeys := columns[0][1:]

	if spec.PrioritySide == "left" {
		mainKey := strings.TrimSpace(columns[0][0])
		if mainKey == "" {
			mainKey = "Data"
		}
		nested := NewParsedData()
		for rowIdx, rowKey := range rowKeys {
			if strings.TrimSpace(rowKey) == "" {
				continue
			}
			rowValues := NewParsedData()
			for j := 1; j < len(columns); j++ {
				header := chartHeader(columns, j, j)
				value := chartCell(columns, j, rowIdx+1)
				if strings.TrimSpace(value) != "" {
					rowValues.Set(header, value)
				}
			}
			if rowValues.Len() > 0 {
				nested.Set(rowKey, []any{rowValues})
			}
		}
		if nested.Len() > 0 {
			result.Set(mainKey, []any{nested})
		}
		return
	}

	mainKey := columns[0][0]
	nested := NewParsedData()
	for j := 1; j < len(columns); j++ {
		header := chartHeader(columns, j, j+1)
		if strings.TrimSpace(header) == "" {
			continue
		}
		sub := NewParsedData()
		for rowIdx, rowKey := range rowKeys {
			if strings.TrimSpace(rowKey) == "" {
				continue
			}
			value := chartCell(columns, j, rowIdx+1)
			if strings.TrimSpace(value) != "" {
				sub.Set(rowKey, value)
			}
		}
		nested.Set(header, sub)
	}
	result.Set(mainKey, nested)
}

// structureChartRows emits untitled columns as a list of per-row cells
// keyed by column number.
func structureChartRows(result *ParsedData, columns [][]string) {
	var rows []any
	for i, col := range columns {
		for j, value := range col {
			if j >= len(rows) {
				rows = append(rows, NewParsedData())
			}
			rows[j].(*ParsedData).Set(fmt.Sprintf("Column %d", i+1), value)
		}
	}
	result.Set("Data", rows)
}

func chartHeader(columns [][]string, col, fallbackNum int) string {
	if len(columns[col]) > 0 && strings.TrimSpace(columns[col][0]) != "" {
		return columns[col][0]
	}
	return fmt.Sprintf("Column %d", fallbackNum)
}

func chartCell(columns [][]string, col, row int) string {
	if row < len(columns[col]) {
		return columns[col][row]
	}
	return ""
}
