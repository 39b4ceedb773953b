package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Fraction of lines that must share a blank column for it to count as a
// separator between table columns.
const columnDetectionThreshold = 0.7

var quotedTokenPattern = regexp.MustCompile(`"[^"]*"|\S+`)

// structureTable shapes tabular text into the structure requested by the
// spec. Columns are found positionally: character columns that are blank on
// most lines split the rows into cells. An explicit delimiter overrides the
// positional detection; text without any stable columns falls back to
// whitespace tokenization honoring double quotes.
func structureTable(text string, spec *FieldSpec) *ParsedData {
	result := NewParsedData()
	if !spec.TableTopLabeling && !spec.TableLeftLabeling {
		return result
	}
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return result
	}

	var rows [][]string
	switch {
	case spec.TableDelimiter != "":
		for _, line := range lines {
			cells := strings.Split(line, spec.TableDelimiter)
			for i := range cells {
				cells[i] = strings.TrimSpace(cells[i])
			}
			rows = append(rows, cells)
		}
	default:
		positions := detectColumnPositions(lines, spec.MinColumnWidth)
		if len(positions) > 0 {
			for _, line := range lines {
				rows = append(rows, extractCellsByPosition([]rune(line), positions))
			}
		} else {
			for _, line := range lines {
				rows = append(rows, splitQuotedTokens(line))
			}
		}
	}

	headerRow := spec.TableHeaderRow
	if headerRow >= len(rows) {
		return result
	}
	padRows(rows)

	headers := rows[headerRow]
	if spec.TableLeftLabeling {
		headers = headers[1:]
	}
	keyCol := spec.TableKeyColumn

	switch spec.TableStructure {
	case TableLeftOnly:
		structureLeftOnly(result, rows, headerRow, keyCol, spec)
	case TableTopMain:
		structureTopMain(result, rows, headers, headerRow, keyCol, spec)
	case TableLeftMain:
		structureLeftMain(result, rows, headers, headerRow, keyCol, spec)
	default:
		structureTopOnly(result, rows, headers, headerRow, spec)
	}
	return result
}

// structureTopOnly keys each column by its header and lists the column's
// values.
func structureTopOnly(result *ParsedData, rows [][]string, headers []string, headerRow int, spec *FieldSpec) {
	var dataRows [][]string
	if spec.TableTopLabeling {
		for i, row := range rows {
			if i == headerRow {
				continue
			}
			dataRows = append(dataRows, row)
		}
	} else {
		dataRows = rows
	}
	for i, header := range headers {
		if strings.TrimSpace(header) == "" {
			continue
		}
		var values []string
		for _, row := range dataRows {
			if i < len(row) {
				values = append(values, row[i])
			}
		}
		if len(values) > 0 {
			result.Set(header, values)
		}
	}
}

// structureLeftOnly keys each row by its label cell and lists the row's
// remaining values.
func structureLeftOnly(result *ParsedData, rows [][]string, headerRow, keyCol int, spec *FieldSpec) {
	dataRows := rows
	if spec.TableTopLabeling {
		dataRows = rows[headerRow+1:]
	}
	for _, row := range dataRows {
		if len(row) < 2 || keyCol >= len(row) {
			continue
		}
		label := row[keyCol]
		if strings.TrimSpace(label) == "" {
			continue
		}
		values := row[1:]
		if spec.TableLeftLabeling {
			values = row[keyCol+1:]
		}
		result.Set(label, values)
	}
}

// structureTopMain nests row labels and values under each column header.
func structureTopMain(result *ParsedData, rows [][]string, headers []string, headerRow, keyCol int, spec *FieldSpec) {
	var dataRows [][]string
	if spec.TableTopLabeling {
		dataRows = rows[headerRow+1:]
	} else if len(rows) > 1 {
		dataRows = rows[1:]
	}
	colStart := 1
	if spec.TableLeftLabeling {
		colStart = keyCol + 1
	}
	for j, header := range headers {
		if strings.TrimSpace(header) == "" {
			continue
		}
		colIdx := j + colStart
		sub := NewParsedData()
		for _, row := range dataRows {
			if keyCol >= len(row) {
				continue
			}
			label := row[keyCol]
			if strings.TrimSpace(label) == "" {
				continue
			}
			if colIdx < len(row) {
				sub.Set(label, row[colIdx])
			}
		}
		result.Set(header, sub)
	}
}

// structureLeftMain nests column headers and values under each row label.
func structureLeftMain(result *ParsedData, rows [][]string, headers []string, headerRow, keyCol int, spec *FieldSpec) {
	var dataRows [][]string
	if spec.TableTopLabeling {
		dataRows = rows[headerRow+1:]
	} else if len(rows) > 1 {
		dataRows = rows[1:]
	}
	colStart := 1
	if spec.TableLeftLabeling {
		colStart = keyCol + 1
	}
	for _, row := range dataRows {
		if keyCol >= len(row) {
			continue
		}
		label := row[keyCol]
		if strings.TrimSpace(label) == "" {
			continue
		}
		sub := NewParsedData()
		for j, header := range headers {
			if strings.TrimSpace(header) == "" {
				continue
			}
			colIdx := j + colStart
			if colIdx < len(row) {
				sub.Set(header, row[colIdx])
			}
		}
		result.Set(label, sub)
	}
}

// detectColumnPositions finds the cell boundaries shared by most lines: a
// character column counts as blank when at least the threshold fraction of
// lines has whitespace there, and runs of blank columns at least
// minWidth wide become separators. The returned slice brackets the cells
// with the line start and the longest line's end; it is empty when the
// lines hold no whitespace at all.
func detectColumnPositions(lines []string, minWidth int) []int {
	if minWidth <= 0 {
		minWidth = DefaultMinColumnWidth
	}
	spaceCounts := make(map[int]int)
	maxLen := 0
	for _, line := range lines {
		runes := []rune(line)
		if len(runes) > maxLen {
			maxLen = len(runes)
		}
		for i, r := range runes {
			if unicode.IsSpace(r) {
				spaceCounts[i]++
			}
		}
	}
	if len(spaceCounts) == 0 {
		return nil
	}

	positions := make([]int, 0, len(spaceCounts))
	for pos := range spaceCounts {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	threshold := float64(len(lines)) * columnDetectionThreshold
	var groups [][]int
	var current []int
	for _, pos := range positions {
		if float64(spaceCounts[pos]) >= threshold {
			if len(current) == 0 || pos == current[len(current)-1]+1 {
				current = append(current, pos)
			} else {
				groups = append(groups, current)
				current = []int{pos}
			}
		} else if len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	separators := []int{0}
	for _, group := range groups {
		if len(group) >= minWidth {
			separators = append(separators, group[len(group)/2])
		}
	}
	return append(separators, maxLen)
}

// extractCellsByPosition slices one line at the given boundaries, trimming
// each cell. Short lines yield empty trailing cells.
func extractCellsByPosition(line []rune, positions []int) []string {
	cells := make([]string, 0, len(positions)-1)
	for i := 0; i < len(positions)-1; i++ {
		start, end := positions[i], positions[i+1]
		if start >= len(line) {
			cells = append(cells, "")
			continue
		}
		if end > len(line) {
			end = len(line)
		}
		cells = append(cells, strings.TrimSpace(string(line[start:end])))
	}
	return cells
}

// splitQuotedTokens tokenizes a line on whitespace, keeping double-quoted
// runs together.
func splitQuotedTokens(line string) []string {
	tokens := quotedTokenPattern.FindAllString(line, -1)
	for i := range tokens {
		tokens[i] = strings.Trim(tokens[i], `"`)
	}
	return tokens
}

// padRows right-pads every row with empty cells to the widest row.
func padRows(rows [][]string) {
	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	for i, row := range rows {
		for len(row) < maxCols {
			row = append(row, "")
		}
		rows[i] = row
	}
}

// nonBlankLines splits text into trimmed lines, dropping the empty ones.
func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
