package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/gramina/aliasgen/internal/cmd"
	"github.com/gramina/aliasgen/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T, cli *CLI, options ...kong.Option) *kong.Kong {
	t.Helper()
	options = append([]kong.Option{kong.Name("aliasgen"), kong.Vars{"log_levels": log.LevelEnum()}, kong.Exit(func(int) { t.Fatal("unexpected exit") })}, options...)
	parser, err := kong.New(cli, options...)
	require.NoError(t, err)
	return parser
}

func TestDefaultCommandIsGenerate(t *testing.T) {
	var cli CLI
	ctx, err := newParser(t, &cli).Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, "generate", ctx.Command())
	assert.Equal(t, "include", cli.Generate.IncludeDir)
	assert.Equal(t, "gen", cli.Generate.GenSubdir)
	assert.Equal(t, "include_backup", cli.Generate.BackupDir)
	assert.Equal(t, ".h", cli.Generate.Ext)
	assert.Equal(t, "gramina_", cli.Generate.Prefix)
	assert.Equal(t, "_", cli.Generate.Separator)
	assert.Equal(t, 1, cli.Generate.Jobs)
	assert.Equal(t, "info", cli.Log.Level)
	assert.Equal(t, "build", cli.BuildDir)
}

func TestFlagsAndEnv(t *testing.T) {
	t.Setenv("ALIASGEN_PREFIX", "acme_")
	var cli CLI
	_, err := newParser(t, &cli).Parse([]string{"generate", "--jobs=4", "--log.level=debug"})
	require.NoError(t, err)

	assert.Equal(t, "acme_", cli.Generate.Prefix)
	assert.Equal(t, 4, cli.Generate.Jobs)
	assert.Equal(t, "debug", cli.Log.Level)
}

func TestConfigInitCommand(t *testing.T) {
	var cli CLI
	ctx, err := newParser(t, &cli).Parse([]string{"config", "init", "--format=yaml"})
	require.NoError(t, err)

	assert.Equal(t, "config init", ctx.Command())
	assert.Equal(t, "generate", cli.Cfg.Init.Command)
	assert.Equal(t, "yaml", cli.Cfg.Init.Format)
}

func TestConfigurationFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "aliasgen.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"include_dir": "headers", "gen_subdir": "generated", "jobs": 3, "log": {"level": "debug"}}`), 0o644))

	var cli CLI
	_, err := newParser(t, &cli, kong.Configuration(kong.JSON, p)).Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, "headers", cli.Generate.IncludeDir)
	assert.Equal(t, "generated", cli.Generate.GenSubdir)
	assert.Equal(t, 3, cli.Generate.Jobs)
	assert.Equal(t, "debug", cli.Log.Level)
}

func TestMissingConfigurationFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	var cli CLI
	_, err := newParser(t, &cli,
		kong.Configuration(kongyaml.Loader, filepath.Join(dir, "aliasgen.yaml")),
		kong.Configuration(kongtoml.Loader, filepath.Join(dir, "aliasgen.toml")),
	).Parse([]string{"--prefix=acme_"})
	require.NoError(t, err)
	assert.Equal(t, "acme_", cli.Generate.Prefix)
}

func TestConfigInitTemplatesLoad(t *testing.T) {
	tests := []struct {
		format string
		loader kong.ConfigurationLoader
	}{
		{"json", kong.JSON},
		{"yaml", kongyaml.Loader},
		{"toml", kongtoml.Loader},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "aliasgen."+tt.format)
			require.NoError(t, (&cmd.ConfigInit{Command: "generate", Format: tt.format, Output: dest}).Run())

			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			require.Contains(t, string(data), "include_backup")
			data = bytes.Replace(data, []byte("include_backup"), []byte("edited_backup"), 1)
			require.NoError(t, os.WriteFile(dest, data, 0o644))

			var cli CLI
			ctx, err := newParser(t, &cli, kong.Configuration(tt.loader, dest)).Parse(nil)
			require.NoError(t, err)

			assert.Equal(t, "generate", ctx.Command())
			assert.Equal(t, "edited_backup", cli.Generate.BackupDir)
			assert.Equal(t, "include", cli.Generate.IncludeDir)
			assert.Equal(t, 1, cli.Generate.Jobs)
		})
	}
}
