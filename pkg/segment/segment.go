// Package segment splits fixture files into separator-bounded test segments
// and classifies each segment as substantive or vacuous.
package segment

import "strings"

// DefaultSeparator is the token that bounds test segments in a fixture file.
const DefaultSeparator = "---"

// DefaultCommentPrefix marks a line as commentary.
const DefaultCommentPrefix = "//"

// Split returns the candidate segments of text in order of occurrence.
// The separator is matched exactly; there is no escaping mechanism, so
// content that contains the token is split at it. Text with no separator
// yields a single segment holding the whole input.
func Split(text, separator string) []string {
	return strings.Split(text, separator)
}

// IsVacuous reports whether a segment carries no content worth emitting.
// A segment is vacuous when, after trimming surrounding whitespace, every
// remaining line is blank or starts with the comment prefix.
func IsVacuous(text, commentPrefix string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}

	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, commentPrefix) {
			return false
		}
	}

	return true
}
