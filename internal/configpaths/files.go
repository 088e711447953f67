// Package configpaths lists where padcalc looks for configuration files.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// EnvConfig names the environment variable holding an explicit config path.
const EnvConfig = "PADCALC_CONFIG"

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, "padcalc"), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "padcalc"), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "padcalc"), nil
		}
		return "", errors.New("HOME not set")
	}
}

// FindUserConfig returns the --config argument or, failing that, $PADCALC_CONFIG.
func FindUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(EnvConfig)
}

// ConfigCandidatePaths builds candidate paths for config files per format.
// A user path is tried first and routed to the loader matching its extension.
func ConfigCandidatePaths(userPath string) (yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&yamlPaths, userPath)
		}
	}

	wd, _ := os.Getwd()
	add(&yamlPaths, filepath.Join(wd, "padcalc.yaml"))
	add(&yamlPaths, filepath.Join(wd, "padcalc.yml"))
	add(&tomlPaths, filepath.Join(wd, "padcalc.toml"))

	if dir, err := DefaultConfigDir(); err == nil {
		add(&yamlPaths, filepath.Join(dir, "config.yaml"))
		add(&yamlPaths, filepath.Join(dir, "config.yml"))
		add(&tomlPaths, filepath.Join(dir, "config.toml"))
	}
	return
}
