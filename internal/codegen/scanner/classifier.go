package scanner

import (
	"regexp"
	"strings"
)

// Directives recognised inside header lines.
const (
	IgnoreLineDirective = "/* ignore */"
	IgnoreFileDirective = "gen_ignore: true"
)

// symnamePattern matches: symname: "<name>"
var symnamePattern = regexp.MustCompile(`symname: "([^"]+)"`)

// Action is what the caller should do with a classified line.
type Action int

const (
	ActionNone Action = iota
	ActionIgnoreFile
	ActionSkipLine
	ActionMatch
)

// Kind identifies the shape of a Match.
type Kind int

const (
	KindSymbol Kind = iota
	KindFunction
	KindType
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindFunction:
		return "function"
	case KindType:
		return "type"
	default:
		return "unknown"
	}
}

// Match is a declaration found on a line.
type Match struct {
	Kind Kind
	Name string // full symbol or type name, e.g. "gramina_init"
	Tag  string // struct, union or enum; only set for KindType
}

// Result is the outcome of classifying one line.
type Result struct {
	Action Action
	Match  Match // valid when Action == ActionMatch
}

// FileState tracks per-file control state while its lines are scanned.
type FileState struct {
	IncludeLine       string // the include directive referencing the file's generated companion
	IncludesGenerated bool
	Ignored           bool
}

// Classifier applies directives and a Matcher to header lines.
type Classifier struct {
	matcher Matcher
}

func NewClassifier(m Matcher) *Classifier {
	return &Classifier{matcher: m}
}

// Classify determines what a single line contributes. The first rule that
// applies wins: file ignore, line ignore, symname override, function, type.
func (c *Classifier) Classify(line string) Result {
	if strings.Contains(line, IgnoreFileDirective) {
		return Result{Action: ActionIgnoreFile}
	}
	if strings.Contains(line, IgnoreLineDirective) {
		return Result{Action: ActionSkipLine}
	}
	if sm := symnamePattern.FindStringSubmatch(line); sm != nil {
		return Result{Action: ActionMatch, Match: Match{Kind: KindSymbol, Name: sm[1]}}
	}
	if name, ok := c.matcher.MatchFunction(line); ok {
		return Result{Action: ActionMatch, Match: Match{Kind: KindFunction, Name: name}}
	}
	if tag, name, ok := c.matcher.MatchType(line); ok {
		return Result{Action: ActionMatch, Match: Match{Kind: KindType, Name: name, Tag: tag}}
	}
	return Result{Action: ActionNone}
}

// Scan classifies line and updates st. Detection of the generated include
// happens on every line, independently of the classification.
func (c *Classifier) Scan(line string, st *FileState) Result {
	if st.IncludeLine != "" && strings.Contains(line, st.IncludeLine) {
		st.IncludesGenerated = true
	}
	res := c.Classify(line)
	if res.Action == ActionIgnoreFile {
		st.Ignored = true
	}
	return res
}
