// Package alias turns classified header declarations into the lines of a
// generated alias header.
package alias

import (
	"fmt"
	"strings"

	"github.com/gramina/aliasgen/internal/codegen/common"
	"github.com/gramina/aliasgen/internal/codegen/scanner"
)

const (
	DefaultPrefix    = "gramina_"
	DefaultSeparator = "_"
)

// Lines holds what a single match contributes to each output set.
type Lines struct {
	NoNamespace []string
	Tagless     []string
}

// Synthesizer builds alias lines for a fixed namespace prefix.
type Synthesizer struct {
	Prefix    string // stripped from full names, e.g. "gramina_"
	Separator string // word separator used for tagless names, e.g. "_"
}

func New(prefix, separator string) Synthesizer {
	return Synthesizer{Prefix: prefix, Separator: separator}
}

// ShortName strips the namespace prefix from name. Names without the prefix
// are returned unchanged.
func (s Synthesizer) ShortName(name string) string {
	return strings.TrimPrefix(name, s.Prefix)
}

// TaglessName is the PascalCase form of the full type name.
func (s Synthesizer) TaglessName(name string) string {
	return common.TitleJoin(name, s.Separator)
}

// NoNamespaceTypeName is the tagless name with the title-cased prefix removed.
func (s Synthesizer) NoNamespaceTypeName(name string) string {
	return strings.TrimPrefix(s.TaglessName(name), common.TitleJoin(s.Prefix, s.Separator))
}

// Synthesize returns the generated lines for m.
func (s Synthesizer) Synthesize(m scanner.Match) Lines {
	switch m.Kind {
	case scanner.KindSymbol, scanner.KindFunction:
		return Lines{NoNamespace: []string{fmt.Sprintf("#define %s %s", s.ShortName(m.Name), m.Name)}}
	case scanner.KindType:
		return Lines{
			NoNamespace: []string{fmt.Sprintf("typedef %s %s %s;", m.Tag, m.Name, s.NoNamespaceTypeName(m.Name))},
			Tagless:     []string{fmt.Sprintf("typedef %s %s %s;", m.Tag, m.Name, s.TaglessName(m.Name))},
		}
	default:
		return Lines{}
	}
}
