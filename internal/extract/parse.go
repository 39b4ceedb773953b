package extract

import (
	"strings"
	"unicode"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ParsedData is an ordered key to value mapping. Values are strings, string
// sequences for repeated keys, or nested structures produced by the chart
// and table stages. Insertion order survives JSON round trips.
type ParsedData = orderedmap.OrderedMap[string, any]

// NewParsedData returns an empty ordered mapping.
func NewParsedData() *ParsedData {
	return orderedmap.New[string, any]()
}

// parseText splits formatted text into key-value pairs line by line. A key
// is one or more words directly followed by a colon and whitespace; the
// value runs to the next key on the line or to the line's end, so colons
// inside values ("Time: 12:34:56") stay untouched. Lines without any colon
// are collected as unparsed. Repeated keys accumulate their values in
// order.
func parseText(text string) (*ParsedData, []string) {
	parsed := NewParsedData()
	var unparsed []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(line, ":") {
			unparsed = append(unparsed, line)
			continue
		}

		pairs := scanPairs([]rune(line))
		if len(pairs) == 0 {
			// a colon is present but no key pattern matched: split once at
			// the first colon
			before, after, _ := strings.Cut(line, ":")
			key, value := strings.TrimSpace(before), strings.TrimSpace(after)
			if key == "" {
				unparsed = append(unparsed, line)
				continue
			}
			if value != "" {
				addParsedValue(parsed, key, value)
			}
			continue
		}
		for _, p := range pairs {
			if p.value == "" {
				continue
			}
			addParsedValue(parsed, p.key, p.value)
		}
	}
	return parsed, unparsed
}

type kvPair struct {
	key   string
	value string
}

// scanPairs finds every key-value pair on one line. The scan runs left to
// right; after a pair is taken the search resumes at the value's boundary.
func scanPairs(line []rune) []kvPair {
	var pairs []kvPair
	pos := 0
	for pos < len(line) {
		if !isKeyChar(line[pos]) {
			pos++
			continue
		}
		colon, valueStart, ok := matchKeyAt(line, pos)
		if !ok {
			pos++
			continue
		}
		end := findBoundary(line, valueStart)
		pairs = append(pairs, kvPair{
			key:   strings.TrimSpace(string(line[pos:colon])),
			value: strings.TrimSpace(string(line[valueStart:end])),
		})
		pos = end
	}
	return pairs
}

// matchKeyAt tries to read a key starting at s: word tokens separated by
// whitespace, where the last token ends directly at a colon followed by at
// least one whitespace character. It returns the colon's index and the
// position after the colon's whitespace run.
func matchKeyAt(line []rune, s int) (colon, valueStart int, ok bool) {
	i := s
	for {
		j := i
		for j < len(line) && isKeyChar(line[j]) {
			j++
		}
		if j == i {
			return 0, 0, false
		}
		if j < len(line) && line[j] == ':' {
			v := j + 1
			for v < len(line) && unicode.IsSpace(line[v]) {
				v++
			}
			if v == j+1 {
				// colon not followed by whitespace, as in clock times
				return 0, 0, false
			}
			return j, v, true
		}
		k := j
		for k < len(line) && unicode.IsSpace(line[k]) {
			k++
		}
		if k == j || k >= len(line) || !isKeyChar(line[k]) {
			return 0, 0, false
		}
		i = k
	}
}

// findBoundary returns the index where a value ends: the start of the
// whitespace run preceding the next single-token key, or the line's end.
func findBoundary(line []rune, from int) int {
	for p := from; p < len(line); p++ {
		if !unicode.IsSpace(line[p]) {
			continue
		}
		q := p
		for q < len(line) && unicode.IsSpace(line[q]) {
			q++
		}
		t := q
		for t < len(line) && isKeyChar(line[t]) {
			t++
		}
		if t == q || t >= len(line) || line[t] != ':' {
			continue
		}
		if t+1 < len(line) && unicode.IsSpace(line[t+1]) {
			return p
		}
	}
	return len(line)
}

func isKeyChar(r rune) bool {
	return !unicode.IsSpace(r) && r != ':'
}

// addParsedValue stores value under key, growing repeated keys into ordered
// sequences.
func addParsedValue(m *ParsedData, key, value string) {
	existing, ok := m.Get(key)
	if !ok {
		m.Set(key, value)
		return
	}
	switch ev := existing.(type) {
	case []string:
		m.Set(key, append(ev, value))
	case string:
		m.Set(key, []string{ev, value})
	default:
		m.Set(key, []any{ev, value})
	}
}
