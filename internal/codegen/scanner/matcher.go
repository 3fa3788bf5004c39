package scanner

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrPattern is returned when a declaration pattern cannot be used.
var ErrPattern = errors.New("invalid declaration pattern")

const (
	// DefaultFunctionPattern matches an unindented function prototype. Group 1 is the name.
	DefaultFunctionPattern = `^[A-Za-z_][\w\s\*]*?[\s\*]([A-Za-z_]\w*)\s*\([^;{]*\)\s*;`
	// DefaultTypePattern matches a tagged type definition or forward declaration.
	// Group 1 is the tag keyword, group 2 the type name.
	DefaultTypePattern = `^\s*(?:typedef\s+)?(struct|union|enum)\s+([A-Za-z_]\w*)\s*(?:\{|;)`
)

// Matcher recognises declarations on a single line of a header.
type Matcher interface {
	MatchFunction(line string) (name string, ok bool)
	MatchType(line string) (tag, name string, ok bool)
}

// RegexMatcher is a Matcher backed by two regular expressions.
type RegexMatcher struct {
	function *regexp.Regexp
	typ      *regexp.Regexp
	// builtin is set when the function pattern is DefaultFunctionPattern.
	// Only then are typedef lines and C keywords filtered out of function
	// matches; a user pattern is taken as written.
	builtin bool
}

// cKeywords can never be the name of a declared function; the default
// function pattern would otherwise pick them up from lines like
// "typedef void (*cb)(int);".
var cKeywords = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true,
	"const": true, "volatile": true, "static": true, "extern": true,
	"inline": true, "return": true, "sizeof": true, "typedef": true,
	"struct": true, "union": true, "enum": true, "if": true, "while": true,
	"for": true, "switch": true, "do": true, "else": true, "case": true,
}

// NewRegexMatcher compiles the two declaration patterns. Empty patterns fall
// back to the defaults.
func NewRegexMatcher(functionPattern, typePattern string) (*RegexMatcher, error) {
	if functionPattern == "" {
		functionPattern = DefaultFunctionPattern
	}
	if typePattern == "" {
		typePattern = DefaultTypePattern
	}

	fn, err := compile("function", functionPattern, 1)
	if err != nil {
		return nil, err
	}
	typ, err := compile("type", typePattern, 2)
	if err != nil {
		return nil, err
	}
	return &RegexMatcher{function: fn, typ: typ, builtin: functionPattern == DefaultFunctionPattern}, nil
}

// MustRegexMatcher is like NewRegexMatcher but panics on error.
func MustRegexMatcher(functionPattern, typePattern string) *RegexMatcher {
	m, err := NewRegexMatcher(functionPattern, typePattern)
	if err != nil {
		panic(err)
	}
	return m
}

func compile(kind, pattern string, groups int) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s pattern: %v", ErrPattern, kind, err)
	}
	if re.NumSubexp() < groups {
		return nil, fmt.Errorf("%w: %s pattern needs %d capture groups, has %d", ErrPattern, kind, groups, re.NumSubexp())
	}
	return re, nil
}

func (m *RegexMatcher) MatchFunction(line string) (string, bool) {
	if m.builtin && strings.HasPrefix(strings.TrimSpace(line), "typedef") {
		return "", false
	}
	sm := m.function.FindStringSubmatch(line)
	if sm == nil || sm[1] == "" {
		return "", false
	}
	if m.builtin && cKeywords[sm[1]] {
		return "", false
	}
	return sm[1], true
}

func (m *RegexMatcher) MatchType(line string) (string, string, bool) {
	sm := m.typ.FindStringSubmatch(line)
	if sm == nil || sm[1] == "" || sm[2] == "" {
		return "", "", false
	}
	return sm[1], sm[2], true
}
