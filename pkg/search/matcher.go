package search

import (
	"regexp"
	"strings"
)

// Matcher finds a term as a literal, case-insensitive substring.
// Filtering, highlighting and replacing all go through a Matcher so that
// a term containing regexp metacharacters behaves the same everywhere.
type Matcher struct {
	term string
	re   *regexp.Regexp
}

// NewMatcher compiles term. A blank term matches nothing and changes nothing.
func NewMatcher(term string) *Matcher {
	m := &Matcher{term: term}
	if !IsBlank(term) {
		m.re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	}
	return m
}

// IsBlank reports whether s is empty or whitespace only
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Term returns the term as given
func (m *Matcher) Term() string {
	return m.term
}

// Blank reports whether the matcher has no usable term
func (m *Matcher) Blank() bool {
	return m.re == nil
}

// Contains reports whether text contains the term
func (m *Matcher) Contains(text string) bool {
	if m.re == nil {
		return false
	}
	return m.re.MatchString(text)
}

// Count returns the number of non-overlapping occurrences in text
func (m *Matcher) Count(text string) int {
	if m.re == nil {
		return 0
	}
	return len(m.re.FindAllStringIndex(text, -1))
}

// ReplaceAll replaces every occurrence in text with repl, taken literally
func (m *Matcher) ReplaceAll(text, repl string) string {
	if m.re == nil {
		return text
	}
	return m.re.ReplaceAllLiteralString(text, repl)
}

// Indexes returns the byte ranges of each occurrence
func (m *Matcher) Indexes(text string) [][]int {
	if m.re == nil {
		return nil
	}
	return m.re.FindAllStringIndex(text, -1)
}
