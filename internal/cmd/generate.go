package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gramina/aliasgen/internal/codegen/alias"
	"github.com/gramina/aliasgen/internal/codegen/generator"
	"github.com/gramina/aliasgen/internal/codegen/scanner"
)

type Generate struct {
	IncludeDir      string `help:"Root of the header tree to scan" default:"include" env:"ALIASGEN_INCLUDE_DIR"`
	GenSubdir       string `help:"Subdirectory of the include root that receives generated headers" default:"gen" env:"ALIASGEN_GEN_SUBDIR"`
	BackupDir       string `help:"Snapshot of the include root taken before every run" default:"include_backup" env:"ALIASGEN_BACKUP_DIR"`
	Ext             string `help:"Extension of eligible headers" default:".h" env:"ALIASGEN_EXT"`
	Prefix          string `help:"Namespace prefix stripped from symbol names" default:"gramina_" env:"ALIASGEN_PREFIX"`
	Separator       string `help:"Word separator used to build tagless type names" default:"_" env:"ALIASGEN_SEPARATOR"`
	NoNamespaceFlag string `help:"Macro that enables the no-namespace aliases" default:"GRAMINA_NO_NAMESPACE" env:"ALIASGEN_NO_NAMESPACE_FLAG"`
	TaglessFlag     string `help:"Macro that enables the tagless typedefs" default:"GRAMINA_WANT_TAGLESS" env:"ALIASGEN_TAGLESS_FLAG"`
	FunctionPattern string `help:"Regexp matching function declarations; group 1 is the name (empty for the built-in pattern, which also skips typedef lines and C keywords; a custom pattern is used as written)" env:"ALIASGEN_FUNCTION_PATTERN"`
	TypePattern     string `help:"Regexp matching type declarations; groups 1 and 2 are tag and name (empty for the built-in pattern)" env:"ALIASGEN_TYPE_PATTERN"`
	Jobs            int    `help:"Number of headers processed concurrently" default:"1" env:"ALIASGEN_JOBS"`
}

func (g *Generate) Options() generator.Options {
	return generator.Options{
		IncludeDir:      g.IncludeDir,
		GenSubdir:       g.GenSubdir,
		BackupDir:       g.BackupDir,
		Ext:             g.Ext,
		NoNamespaceFlag: g.NoNamespaceFlag,
		TaglessFlag:     g.TaglessFlag,
		Jobs:            g.Jobs,
	}
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	_, err := g.Execute(ctx, logger)
	return err
}

// Execute performs a full backup, clear and regeneration of the include tree.
func (g *Generate) Execute(ctx context.Context, logger *slog.Logger) (generator.Summary, error) {
	opts := g.Options()
	if err := opts.Validate(); err != nil {
		return generator.Summary{}, err
	}

	matcher, err := scanner.NewRegexMatcher(g.FunctionPattern, g.TypePattern)
	if err != nil {
		return generator.Summary{}, fmt.Errorf("configure declaration patterns: %w", err)
	}

	logger.Info("Starting alias header generation",
		"include", opts.IncludeDir,
		"gen", opts.GenSubdir,
		"backup", opts.BackupDir,
		"prefix", g.Prefix,
		"jobs", opts.Jobs)

	gen := generator.New(opts, scanner.NewClassifier(matcher), alias.New(g.Prefix, g.Separator), logger)
	return gen.Run(ctx)
}
