package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	cases := []struct {
		name string
		text string
		want TextCounts
	}{
		{"empty", "", TextCounts{}},
		{"single line", "a b c\n", TextCounts{Lines: 1, Words: 3, Characters: 6}},
		{"no trailing newline", "a b\nc", TextCounts{Lines: 2, Words: 3, Characters: 5}},
		{"blank lines", "a\n\nb\n", TextCounts{Lines: 3, Words: 2, Characters: 5}},
		{"crlf", "one\r\ntwo\r\n", TextCounts{Lines: 2, Words: 2, Characters: 8}},
		{"lone cr", "one\rtwo", TextCounts{Lines: 2, Words: 2, Characters: 7}},
		{"whitespace only", "  \t \n", TextCounts{Lines: 1, Words: 0, Characters: 5}},
		{"unicode", "héllo wörld\n", TextCounts{Lines: 1, Words: 2, Characters: 12}},
		{"form feed boundary", "a\fb", TextCounts{Lines: 2, Words: 2, Characters: 3}},
		{"line separator", "a\u2028b", TextCounts{Lines: 2, Words: 2, Characters: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Count(tc.text))
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\nc\n", NormalizeNewlines("a\r\nb\rc\n"))
	assert.Equal(t, "plain", NormalizeNewlines("plain"))
}
