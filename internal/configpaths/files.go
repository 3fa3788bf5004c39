package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "aliasgen"

// DefaultConfigDir returns the platform-specific configuration directory for aliasgen.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appName), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", appName), nil
		}
		return "", errors.New("HOME not set")
	}
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return os.MkdirAll(dir, 0o755)
}

// ConfigCandidatePaths builds candidate paths for config files per format.
// If userPath is provided, it is prioritized and routed to the matching loader by extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch ext := filepath.Ext(userPath); ext {
		case ".json":
			add(&jsonPaths, userPath)
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	addDir := func(dir string, bases ...string) {
		for _, base := range bases {
			add(&jsonPaths, filepath.Join(dir, base+".json"))
			add(&yamlPaths, filepath.Join(dir, base+".yaml"))
			add(&yamlPaths, filepath.Join(dir, base+".yml"))
			add(&tomlPaths, filepath.Join(dir, base+".toml"))
		}
	}

	// Project-local config wins over per-user and system config.
	wd, _ := os.Getwd()
	addDir(wd, appName, "."+appName)

	if dir, err := DefaultConfigDir(); err == nil {
		addDir(dir, "config")
	}

	if runtime.GOOS != "windows" {
		addDir("/etc/"+appName, "config")
	}

	return
}

// LeaveBuildDir changes to the parent directory when the working directory is
// named buildDir, so that paths resolve against the project root. It reports
// whether the directory was changed.
func LeaveBuildDir(buildDir string) (bool, error) {
	if buildDir == "" {
		return false, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return false, err
	}
	if filepath.Base(wd) != buildDir {
		return false, nil
	}
	if err := os.Chdir(filepath.Dir(wd)); err != nil {
		return false, err
	}
	return true, nil
}
