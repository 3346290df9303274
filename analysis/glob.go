package analysis

import (
	"path"
	"regexp"
	"strings"
)

// Pattern selects files during Walk. Patterns without a slash match the
// base name only ("*.go"); patterns with a slash match the slash-separated
// path relative to the walk root, where "**" spans directories
// ("src/**/*.go").
type Pattern struct {
	raw   string
	base  bool
	regex *regexp.Regexp
}

// CompilePattern validates raw. An empty pattern matches every file.
func CompilePattern(raw string) (*Pattern, error) {
	if raw == "" {
		raw = "*"
	}
	p := &Pattern{raw: raw, base: !strings.Contains(raw, "/")}
	if _, err := path.Match(raw, ""); err != nil {
		return nil, err
	}
	if strings.Contains(raw, "**") {
		re, err := regexp.Compile(globToRegex(raw))
		if err != nil {
			return nil, err
		}
		p.regex = re
	}
	return p, nil
}

// String returns the pattern as written.
func (p *Pattern) String() string { return p.raw }

// Match reports whether rel, a slash-separated path relative to the walk
// root, is selected.
func (p *Pattern) Match(rel string) bool {
	subject := rel
	if p.base {
		subject = path.Base(rel)
	}
	if p.regex != nil {
		return p.regex.MatchString(subject)
	}
	ok, _ := path.Match(p.raw, subject)
	return ok
}

// globToRegex translates a glob with "**" into an anchored expression.
// "**/" also matches zero directories.
func globToRegex(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch ch {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				i++
				if i+1 < len(runes) && runes[i+1] == '/' {
					i++
					b.WriteString("(?:.*/)?")
				} else {
					b.WriteString(".*")
				}
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		case '.', '+', '(', ')', '|', '^', '$', '[', ']', '{', '}', '\\':
			b.WriteRune('\\')
			b.WriteRune(ch)
		default:
			b.WriteRune(ch)
		}
	}
	b.WriteString("$")
	return b.String()
}
