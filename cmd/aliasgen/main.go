package main

import (
	"os"
	"strings"

	"github.com/gramina/aliasgen/internal/codegen/common"
	"github.com/gramina/aliasgen/internal/config"
	"github.com/gramina/aliasgen/internal/configpaths"
	"github.com/gramina/aliasgen/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/joho/godotenv"
)

func main() {
	buildDir := findFlag(os.Args[1:], "--build-dir", "ALIASGEN_BUILD_DIR", "build")
	if _, err := configpaths.LeaveBuildDir(buildDir); err != nil {
		_, _ = os.Stderr.WriteString("failed to leave build directory: " + err.Error() + "\n")
		os.Exit(2)
	}

	// A project-local .env may carry ALIASGEN_* overrides.
	_ = godotenv.Load()

	userCfg := findFlag(os.Args[1:], "--config", "ALIASGEN_CONFIG", "")
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	version, err := common.GetVersion()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("aliasgen"),
		kong.Description("Generate namespace-stripping and tagless alias headers for a C include tree"),
		kong.UsageOnError(),
		kong.Vars{"version": version, "log_levels": log.LevelEnum()},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

// findFlag extracts a flag value before kong runs, falling back to an
// environment variable and then def.
func findFlag(args []string, flag, env, def string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, flag+"=") {
			return a[len(flag)+1:]
		}
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}
