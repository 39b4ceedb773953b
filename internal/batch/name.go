package batch

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// defaultCombinedName labels a combined output when no usable common name
// can be derived from the input file names.
const defaultCombinedName = "combined_output"

var namePattern = regexp.MustCompile(`[A-Za-z0-9]+`)

// CommonName derives a shared base name for a set of report file names. It
// takes the longest common prefix of the extension-stripped base names,
// trimmed of separator characters; a too-short prefix falls back to the
// longest alphanumeric token present in every name, and a name still under
// two characters falls back to a fixed default.
func CommonName(names []string) string {
	if len(names) == 0 {
		return defaultCombinedName
	}

	bases := make([]string, len(names))
	for i, name := range names {
		base := filepath.Base(name)
		bases[i] = strings.TrimSuffix(base, filepath.Ext(base))
	}

	common := strings.Trim(commonPrefix(bases), "_- ")
	if utf8.RuneCountInString(common) < 3 {
		if token := longestSharedToken(bases); token != "" {
			common = token
		}
	}
	if utf8.RuneCountInString(common) < 2 {
		return defaultCombinedName
	}
	return common
}

// commonPrefix returns the longest prefix shared by every name.
func commonPrefix(names []string) string {
	first := []rune(names[0])
	length := len(first)
	for _, name := range names[1:] {
		runes := []rune(name)
		if len(runes) < length {
			length = len(runes)
		}
		i := 0
		for i < length && first[i] == runes[i] {
			i++
		}
		length = i
		if length == 0 {
			return ""
		}
	}
	return string(first[:length])
}

// longestSharedToken returns the longest alphanumeric token that appears in
// every name. Equal-length candidates resolve to the lexicographically
// smallest so the result is stable.
func longestSharedToken(names []string) string {
	shared := make(map[string]bool)
	for _, token := range namePattern.FindAllString(names[0], -1) {
		shared[token] = true
	}
	for _, name := range names[1:] {
		kept := make(map[string]bool)
		for _, token := range namePattern.FindAllString(name, -1) {
			if shared[token] {
				kept[token] = true
			}
		}
		shared = kept
	}

	best := ""
	for token := range shared {
		if len(token) > len(best) || (len(token) == len(best) && token < best) {
			best = token
		}
	}
	return best
}
