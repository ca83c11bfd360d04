package extract

import (
	"path"
	"regexp"
)

// A Selector picks entries out of an archive by name.
type Selector interface {
	// Match returns true if the entry with this full path is selected.
	Match(name string) bool
	String() string
}

// A PatternSelector matches entries whose full path matches a regular expression.
// The expression is anchored at the start of the path but not the end, so "lib/.*\.js" matches
// "lib/output.js" but not "other/lib/output.js".
type PatternSelector struct {
	pattern string
	re      *regexp.Regexp
}

// CompilePattern compiles the given expression into a PatternSelector.
// The expression must be valid on its own before it is anchored; otherwise something like
// "x)|(.*" would close the anchoring group early and match anywhere.
func CompilePattern(pattern string) (*PatternSelector, error) {
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, &ConfigError{Path: pattern, Err: err}
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, &ConfigError{Path: pattern, Err: err}
	}
	return &PatternSelector{pattern: pattern, re: re}, nil
}

// Match implements the Selector interface.
func (s *PatternSelector) Match(name string) bool {
	return s.re.MatchString(name)
}

func (s *PatternSelector) String() string {
	return s.pattern
}

// A NameSelector matches entries by exact basename.
type NameSelector string

// Match implements the Selector interface.
func (s NameSelector) Match(name string) bool {
	return path.Base(name) == string(s)
}

func (s NameSelector) String() string {
	return string(s)
}
