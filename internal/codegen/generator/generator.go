// Package generator drives alias header generation over an include tree.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/gramina/aliasgen/internal/codegen/alias"
	"github.com/gramina/aliasgen/internal/codegen/scanner"
)

// Options configures a generation run. Paths are relative to the working directory.
type Options struct {
	IncludeDir      string // root of the header tree
	GenSubdir       string // generated subtree under IncludeDir
	BackupDir       string // snapshot of IncludeDir taken before every run
	Ext             string // eligible header extension
	NoNamespaceFlag string // feature macro gating the no-namespace block
	TaglessFlag     string // feature macro gating the tagless block
	Jobs            int    // headers processed concurrently; <= 1 is sequential
}

// DefaultOptions mirrors the layout of the gramina source tree.
func DefaultOptions() Options {
	return Options{
		IncludeDir:      "include",
		GenSubdir:       "gen",
		BackupDir:       "include_backup",
		Ext:             ".h",
		NoNamespaceFlag: "GRAMINA_NO_NAMESPACE",
		TaglessFlag:     "GRAMINA_WANT_TAGLESS",
		Jobs:            1,
	}
}

// ErrOptions is returned by Options.Validate.
var ErrOptions = errors.New("invalid generator options")

// Validate rejects layouts where clearing the generated subtree or the
// backup would destroy the headers themselves.
func (o Options) Validate() error {
	switch {
	case o.IncludeDir == "":
		return fmt.Errorf("%w: include dir is empty", ErrOptions)
	case o.BackupDir == "":
		return fmt.Errorf("%w: backup dir is empty", ErrOptions)
	case o.Ext == "":
		return fmt.Errorf("%w: header extension is empty", ErrOptions)
	case o.NoNamespaceFlag == "" || o.TaglessFlag == "":
		return fmt.Errorf("%w: feature flags must be set", ErrOptions)
	}

	gen := filepath.Clean(o.GenSubdir)
	if o.GenSubdir == "" || gen == "." || !filepath.IsLocal(gen) {
		return fmt.Errorf("%w: generated subdir %q must be a subdirectory of the include dir", ErrOptions, o.GenSubdir)
	}

	include, err := filepath.Abs(o.IncludeDir)
	if err != nil {
		return fmt.Errorf("resolve include dir: %w", err)
	}
	backup, err := filepath.Abs(o.BackupDir)
	if err != nil {
		return fmt.Errorf("resolve backup dir: %w", err)
	}
	if within(include, backup) || within(backup, include) {
		return fmt.Errorf("%w: backup dir %q overlaps include dir %q", ErrOptions, o.BackupDir, o.IncludeDir)
	}
	return nil
}

// within reports whether p is base or lies below it.
func within(base, p string) bool {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return false
	}
	return rel == "." || filepath.IsLocal(rel)
}

type Generator struct {
	opts       Options
	classifier *scanner.Classifier
	synth      alias.Synthesizer
	logger     *slog.Logger
}

func New(opts Options, classifier *scanner.Classifier, synth alias.Synthesizer, logger *slog.Logger) *Generator {
	return &Generator{
		opts:       opts,
		classifier: classifier,
		synth:      synth,
		logger:     logger,
	}
}

// Summary counts what a run did.
type Summary struct {
	Discovered int
	Generated  int
	Ignored    int
	Patched    int
}

// Run snapshots and clears the tree, then regenerates every header.
// The setup phase completes before any header is processed.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	if err := g.opts.Validate(); err != nil {
		return Summary{}, err
	}
	if err := g.Prepare(); err != nil {
		return Summary{}, err
	}

	paths, err := Discover(g.opts.IncludeDir, g.opts.GenSubdir, g.opts.Ext)
	if err != nil {
		return Summary{}, err
	}
	g.logger.Info("Discovered headers", "count", len(paths), "root", g.opts.IncludeDir)

	var generated, ignored, patched atomic.Int64

	jobs := g.opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for _, p := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := NewHeader(g.opts.IncludeDir, g.opts.GenSubdir, p)
			if err != nil {
				return err
			}
			out, err := g.ProcessHeader(h)
			if err != nil {
				return err
			}
			if out.Ignored {
				ignored.Add(1)
				return nil
			}
			generated.Add(1)
			if out.Patched {
				patched.Add(1)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Summary{}, fmt.Errorf("generate alias headers: %w", err)
	}

	s := Summary{
		Discovered: len(paths),
		Generated:  int(generated.Load()),
		Ignored:    int(ignored.Load()),
		Patched:    int(patched.Load()),
	}
	g.logger.Info("Alias header generation complete",
		"discovered", s.Discovered,
		"generated", s.Generated,
		"ignored", s.Ignored,
		"patched", s.Patched)
	return s, nil
}
