package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// normalizeText turns raw extracted text into the formatted text the parsers
// consume. The steps run in a fixed order: promote forced keywords to keys,
// strip colons after configured keywords, repair declared line breaks, then
// collapse blank lines. Every step is idempotent.
func normalizeText(raw string, spec *FieldSpec) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = promoteForcedKeywords(text, spec.ForcedKeywords)
	text = removeColonsAfter(text, spec.RemoveColonAfter)
	text = joinBreaksBefore(text, spec.RemoveBreaksBefore)
	text = joinBreaksAfter(text, spec.RemoveBreaksAfter)
	return collapseBlankLines(text)
}

// promoteForcedKeywords inserts a colon after each keyword occurrence that
// is followed by whitespace but not already by a colon, turning bare labels
// into parseable keys. A keyword ending its line gets a trailing colon too.
func promoteForcedKeywords(text string, keywords []string) string {
	if len(keywords) == 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			line = promoteKeyword(line, kw)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func promoteKeyword(line, kw string) string {
	var b strings.Builder
	rest := line
	for {
		idx := strings.Index(rest, kw)
		if idx < 0 {
			b.WriteString(rest)
			break
		}
		end := idx + len(kw)

		// measure the whitespace run behind the occurrence
		j, run := end, 0
		for j < len(rest) {
			r, size := utf8.DecodeRuneInString(rest[j:])
			if !unicode.IsSpace(r) {
				break
			}
			j += size
			run++
		}

		// a single space directly in front of a colon means the keyword is
		// already a key, so leave it alone and keep scanning
		promote := run >= 1 && (j >= len(rest) || rest[j] != ':' || run >= 2)
		if promote {
			b.WriteString(rest[:end])
			b.WriteByte(':')
			b.WriteString(rest[end:j])
			rest = rest[j:]
			continue
		}
		b.WriteString(rest[:idx+1])
		rest = rest[idx+1:]
	}

	line = b.String()
	if strings.HasSuffix(strings.TrimSpace(line), kw) {
		line = strings.TrimRightFunc(line, unicode.IsSpace) + ": "
	}
	return line
}

// removeColonsAfter strips the colon directly behind each configured
// keyword, demoting a mis-detected key back into plain text.
func removeColonsAfter(text string, keywords []string) string {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		text = strings.ReplaceAll(text, kw+":", kw)
	}
	return text
}

// joinBreaksBefore removes the line break in front of each configured word,
// pulling the word up to the previous line.
func joinBreaksBefore(text string, words []string) string {
	for _, w := range words {
		if w == "" {
			continue
		}
		text = strings.ReplaceAll(text, "\n"+w, " "+w)
	}
	return text
}

// joinBreaksAfter removes the line break behind each configured word,
// pulling the next line up.
func joinBreaksAfter(text string, words []string) string {
	for _, w := range words {
		if w == "" {
			continue
		}
		text = strings.ReplaceAll(text, w+"\n", w+" ")
	}
	return text
}

// collapseBlankLines trims every line and drops the empty ones.
func collapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
