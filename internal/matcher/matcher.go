// Package matcher selects operation names by pattern. A pattern is a plain
// substring ("series"), a shell glob ("series_*", "release?") or a regular
// expression ("^category_(children|related)$"); the kind is detected from
// the pattern text. Matching is case-insensitive.
package matcher

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Substring matches names containing the pattern.
	Substring PatternType = iota
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob
	// Regex uses regular expressions.
	Regex
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Substring:
		return "substring"
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	default:
		return "unknown"
	}
}

// Matcher tests names against one compiled pattern. It is immutable and
// safe for concurrent use.
type Matcher struct {
	pattern     string
	patternType PatternType
	lowered     string
	compiled    *regexp.Regexp
}

// New compiles pattern, detecting its type. An empty pattern matches everything.
func New(pattern string) (*Matcher, error) {
	m := &Matcher{
		pattern:     pattern,
		patternType: detectPatternType(pattern),
		lowered:     strings.ToLower(pattern),
	}

	switch m.patternType {
	case Glob:
		if _, err := path.Match(m.lowered, ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
	case Regex:
		compiled, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		m.compiled = compiled
	}
	return m, nil
}

// MustNew is New that panics on an invalid pattern.
func MustNew(pattern string) *Matcher {
	m, err := New(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether name matches the pattern.
func (m *Matcher) Match(name string) bool {
	switch m.patternType {
	case Glob:
		matched, _ := path.Match(m.lowered, strings.ToLower(name))
		return matched
	case Regex:
		return m.compiled.MatchString(name)
	default:
		return strings.Contains(strings.ToLower(name), m.lowered)
	}
}

// Filter returns the names that match, in input order.
func (m *Matcher) Filter(names ...string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if m.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// Pattern returns the original pattern string.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Type returns the detected pattern type.
func (m *Matcher) Type() PatternType {
	return m.patternType
}

// detectPatternType treats regex metacharacters that globs lack as regex,
// glob wildcards as glob, and anything else as a substring.
func detectPatternType(pattern string) PatternType {
	if strings.ContainsAny(pattern, "^$+|(){}\\") {
		return Regex
	}
	if strings.ContainsAny(pattern, "*?[") {
		return Glob
	}
	return Substring
}
