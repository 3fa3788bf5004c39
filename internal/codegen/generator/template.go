package generator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/gramina/aliasgen/internal/codegen/common"
)

const genHeaderTmpl = `#if defined({{.NoNamespaceFlag}}) && !defined({{.NoNamespaceGuard}})
#define {{.NoNamespaceGuard}}

{{join .NoNamespace "\n"}}

#endif
#if defined({{.TaglessFlag}}) && !defined({{.TaglessGuard}})
#define {{.TaglessGuard}}

{{join .Tagless "\n"}}

#endif
`

var genHeader = template.Must(template.New("gen_header").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(genHeaderTmpl))

type genHeaderData struct {
	NoNamespaceFlag  string
	NoNamespaceGuard string
	NoNamespace      []string
	TaglessFlag      string
	TaglessGuard     string
	Tagless          []string
}

func (g *Generator) render(h Header, art *Artifact) ([]byte, error) {
	data := genHeaderData{
		NoNamespaceFlag:  g.opts.NoNamespaceFlag,
		NoNamespaceGuard: common.HeaderGuard(h.BareName + "_NN"),
		NoNamespace:      art.NoNamespace(),
		TaglessFlag:      g.opts.TaglessFlag,
		TaglessGuard:     common.HeaderGuard(h.BareName + "_TG"),
		Tagless:          art.Tagless(),
	}

	var buf bytes.Buffer
	if err := genHeader.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render generated header for %s: %w", h.BareName, err)
	}
	return buf.Bytes(), nil
}
