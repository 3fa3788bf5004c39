package generator

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gramina/aliasgen/internal/codegen/alias"
	"github.com/gramina/aliasgen/internal/codegen/scanner"
)

// Header is a header file discovered under the include root.
type Header struct {
	Path        string // path as discovered, e.g. include/common/log.h
	BareName    string // path relative to the include root with '/' separators, e.g. common/log.h
	GenPath     string // generated companion, e.g. include/gen/common/log.h
	IncludeLine string // #include "gen/common/log.h"
}

// NewHeader derives the naming of a header located at p under root.
func NewHeader(root, genSubdir, p string) (Header, error) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return Header{}, fmt.Errorf("resolve %s relative to %s: %w", p, root, err)
	}
	bare := filepath.ToSlash(rel)
	return Header{
		Path:        p,
		BareName:    bare,
		GenPath:     filepath.Join(root, genSubdir, filepath.FromSlash(bare)),
		IncludeLine: fmt.Sprintf(`#include "%s"`, path.Join(filepath.ToSlash(genSubdir), bare)),
	}, nil
}

// Artifact collects the de-duplicated generated lines of one header.
type Artifact struct {
	noNamespace map[string]struct{}
	tagless     map[string]struct{}
}

func NewArtifact() *Artifact {
	return &Artifact{
		noNamespace: make(map[string]struct{}),
		tagless:     make(map[string]struct{}),
	}
}

func (a *Artifact) Add(l alias.Lines) {
	for _, s := range l.NoNamespace {
		a.noNamespace[s] = struct{}{}
	}
	for _, s := range l.Tagless {
		a.tagless[s] = struct{}{}
	}
}

// NoNamespace returns the no-namespace lines in lexicographic order.
func (a *Artifact) NoNamespace() []string { return sortedKeys(a.noNamespace) }

// Tagless returns the tagless lines in lexicographic order.
func (a *Artifact) Tagless() []string { return sortedKeys(a.tagless) }

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Outcome reports what ProcessHeader did with a header.
type Outcome struct {
	Ignored  bool // the header carries the file-level ignore directive
	Patched  bool // the include of the generated companion was appended
	Artifact *Artifact
}

// ProcessHeader scans h, appends the include of its generated companion when
// missing and writes the generated file.
func (g *Generator) ProcessHeader(h Header) (Outcome, error) {
	data, err := os.ReadFile(h.Path)
	if err != nil {
		return Outcome{}, fmt.Errorf("read header %s: %w", h.Path, err)
	}
	content := string(data)

	art := NewArtifact()
	st := &scanner.FileState{IncludeLine: h.IncludeLine}
	for _, line := range strings.Split(content, "\n") {
		res := g.classifier.Scan(line, st)
		switch res.Action {
		case scanner.ActionIgnoreFile:
			g.logger.Debug("Skipping ignored header", "header", h.BareName)
			return Outcome{Ignored: true}, nil
		case scanner.ActionMatch:
			art.Add(g.synth.Synthesize(res.Match))
		}
	}

	out := Outcome{Artifact: art}
	if !st.IncludesGenerated {
		if err := appendInclude(h, content); err != nil {
			return Outcome{}, err
		}
		out.Patched = true
	}

	if err := os.MkdirAll(filepath.Dir(h.GenPath), 0o755); err != nil {
		return Outcome{}, fmt.Errorf("create generated dir for %s: %w", h.BareName, err)
	}
	rendered, err := g.render(h, art)
	if err != nil {
		return Outcome{}, err
	}
	if err := writeFileAtomic(h.GenPath, rendered, 0o644); err != nil {
		return Outcome{}, fmt.Errorf("write generated header %s: %w", h.GenPath, err)
	}

	g.logger.Debug("Generated header",
		"header", h.BareName,
		"output", h.GenPath,
		"noNamespace", len(art.noNamespace),
		"tagless", len(art.tagless),
		"patched", out.Patched)
	return out, nil
}

// appendInclude rewrites the header with its generated include as the last line.
func appendInclude(h Header, content string) error {
	info, err := os.Stat(h.Path)
	if err != nil {
		return fmt.Errorf("stat header %s: %w", h.Path, err)
	}

	var b strings.Builder
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(h.IncludeLine)
	b.WriteByte('\n')

	if err := writeFileAtomic(h.Path, []byte(b.String()), info.Mode().Perm()); err != nil {
		return fmt.Errorf("append include to %s: %w", h.Path, err)
	}
	return nil
}

// writeFileAtomic writes data next to name and renames it into place.
func writeFileAtomic(name string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, name); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
