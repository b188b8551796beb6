package analyzer

import (
	"iter"
	"slices"
)

// maxCandidateStarts bounds how many opening braces are scanned from, so a
// run of unclosed or deeply nested braces cannot make interpretation
// quadratic in the model output.
const maxCandidateStarts = 256

// JSONObjects yields the brace-balanced spans of s, ordered by the position
// of their opening brace. Braces inside JSON string literals do not count,
// and spans that never close are skipped. Only the first maxCandidateStarts
// opening braces are tried.
func JSONObjects(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		tried := 0
		for start := 0; start < len(s) && tried < maxCandidateStarts; start++ {
			if s[start] != '{' {
				continue
			}
			tried++
			if end := matchBrace(s, start); end > 0 {
				if !yield(s[start : end+1]) {
					return
				}
			}
		}
	}
}

// FindJSONObjects collects every span JSONObjects yields.
func FindJSONObjects(s string) []string {
	return slices.Collect(JSONObjects(s))
}

// matchBrace returns the index of the brace closing the one at start, or -1.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
