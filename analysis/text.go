package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextCounts holds the text-derived part of FileStatistics.
type TextCounts struct {
	Lines      int `json:"lines" yaml:"lines"`
	Words      int `json:"words" yaml:"words"`
	Characters int `json:"characters" yaml:"characters"`
}

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeNewlines translates \r\n and lone \r to \n, as a text-mode read
// would.
func NormalizeNewlines(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	return newlineReplacer.Replace(text)
}

// Count computes line, word and character counts for decoded text. Newlines
// are normalized first so "\r\n" counts as a single character.
func Count(text string) TextCounts {
	text = NormalizeNewlines(text)
	return TextCounts{
		Lines:      countLines(text),
		Words:      len(strings.FieldsFunc(text, isWordSeparator)),
		Characters: utf8.RuneCountInString(text),
	}
}

// isLineBoundary reports the runes that terminate a line. \r never reaches
// here after normalization.
func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// countLines counts lines the way a line-boundary split does: every boundary
// ends a line and a trailing partial line counts as one more.
func countLines(text string) int {
	lines := 0
	pending := false
	for _, r := range text {
		if isLineBoundary(r) {
			lines++
			pending = false
			continue
		}
		pending = true
	}
	if pending {
		lines++
	}
	return lines
}

// isWordSeparator widens unicode.IsSpace with the ASCII information
// separators, which also delimit words.
func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}
