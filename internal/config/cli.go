// Package config declares the aliasgen command line, which kong also fills
// from JSON, YAML and TOML configuration files and ALIASGEN_* variables.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/gramina/aliasgen/internal/cmd"
)

type Log struct {
	Level string `help:"Log level (${log_levels})" default:"info" enum:"${log_levels}" env:"ALIASGEN_LOG_LEVEL"`
	File  string `help:"Also write logs to this file" env:"ALIASGEN_LOG_FILE"`
}

type CLI struct {
	Version  kong.VersionFlag `help:"Print version and exit"`
	Config   string           `help:"Configuration file (json, yaml or toml)" env:"ALIASGEN_CONFIG"`
	BuildDir string           `help:"When run from a directory with this name, work from its parent instead" default:"build" env:"ALIASGEN_BUILD_DIR"`
	Log      Log              `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" default:"withargs" help:"Back up the include tree and regenerate all alias headers"`
	Cfg      cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
