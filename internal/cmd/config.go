package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/gramina/aliasgen/internal/codegen/common"
	"github.com/gramina/aliasgen/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file for a specific command.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"generate" default:"generate"`
	Format  string `help:"Output format" enum:"json,yaml,yml,toml" default:"toml"`
	Output  string `help:"Destination file path (defaults to aliasgen.<format> in the current directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Run generates a configuration template dynamically via reflection of the command structs and tags.
func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	var cmdType reflect.Type
	switch c.Command {
	case "generate":
		cmdType = reflect.TypeOf(Generate{})
	default:
		return errors.New("unknown command; expected 'generate'")
	}

	// kong's JSON resolver reads flat snake_case keys, kong-toml reads flat
	// dashed flag names and kong-yaml nests flags under their command.
	var root map[string]any
	switch format {
	case "json":
		root = buildMapFromStruct(cmdType, snakeKey)
	case "toml":
		root = buildMapFromStruct(cmdType, dashKey)
	default:
		root = map[string]any{c.Command: buildMapFromStruct(cmdType, dashKey)}
	}

	dest := c.Output
	if dest == "" {
		dest = "aliasgen." + format
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	data, err := marshalConfig(root, format)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func marshalConfig(root map[string]any, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(root, "", "  ")
	case "yaml":
		return yaml.Marshal(root)
	case "toml":
		return toml.Marshal(root)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

func flagName(f reflect.StructField) string {
	if name := f.Tag.Get("name"); name != "" {
		return name
	}
	return strings.ReplaceAll(common.ToSnakeCase(f.Name), "_", "-")
}

func snakeKey(f reflect.StructField) string { return strings.ReplaceAll(flagName(f), "-", "_") }
func dashKey(f reflect.StructField) string  { return flagName(f) }

func buildMapFromStruct(t reflect.Type, key func(reflect.StructField) string) map[string]any {
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("kong") == "-" {
			continue
		}
		if val := defaultValueForField(f.Type, f.Tag.Get("default")); val != nil {
			out[key(f)] = val
		}
	}
	return out
}

func defaultValueForField(t reflect.Type, def string) any {
	switch t.Kind() {
	case reflect.String:
		return def // may be empty
	case reflect.Int:
		if def == "" {
			return 0
		}
		n, err := strconv.Atoi(def)
		if err != nil {
			return 0
		}
		return n
	default:
		return nil
	}
}
