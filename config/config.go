// Package config loads the CLI's user-facing settings: the recursion
// depth budget handed to the evaluator, the default generator search
// path handed to the filesystem loader, and whether unknown escape
// sequences should be treated as a lint error. Settings never reach the
// parser/compile/eval packages as a config.Settings value directly; the
// CLI reads one, then threads the pieces each package already accepts
// (eval.WithMaxDepth, loader.FSLoader's Dirs).
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Settings is the unmarshaled shape of config.yaml.
type Settings struct {
	MaxRecursionDepth int      `yaml:"maxRecursionDepth"`
	ImportPaths       []string `yaml:"importPaths"`
	StrictEscapes     bool     `yaml:"strictEscapes"`
}

// DefaultSettings mirrors DefaultConfigYaml; used whenever no config file
// is present or -noconfig forces the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		MaxRecursionDepth: 1000,
		ImportPaths:       nil,
		StrictEscapes:     false,
	}
}

// DefaultConfigYaml is written to disk the first time LoadOrCreate runs
// with no existing config file, so the file on disk and DefaultSettings
// never drift apart silently.
var DefaultConfigYaml = []byte(`# perchance-go configuration
# maxRecursionDepth bounds how deeply nested body evaluation (references,
# inline alternations, imports) may recurse before evaluation fails safely.
maxRecursionDepth: 1000

# importPaths lists directories searched, in order, for "name.perchance"
# files when a template uses {import:name} and no -importpath flag was
# given on the command line. Commented out by default (no search path).
# importPaths:
#   - /path/to/generators

# strictEscapes, together with the -lint-escapes command-line flag, turns
# on a lint check that rejects templates containing a backslash escape this
# implementation does not recognize, instead of silently preserving it as
# literal text. Without the flag this setting has no effect.
strictEscapes: false
`)

// ConfigPath returns the path to the configuration file.
func ConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("perchance", "config.yaml"))
}

// LoadOrCreate loads the config file if it exists and creates a default
// one otherwise, the same flow app/config.go uses for aretext.
func LoadOrCreate(forceDefault bool) (Settings, error) {
	if forceDefault {
		log.Printf("Using default config\n")
		return unmarshalSettings(DefaultConfigYaml)
	}

	path, err := ConfigPath()
	if err != nil {
		return Settings{}, err
	}

	log.Printf("Loading config from %q\n", path)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("Writing default config to %q\n", path)
		if err := saveDefaultConfig(path); err != nil {
			return Settings{}, fmt.Errorf("writing default config to %q: %w", path, err)
		}
		return unmarshalSettings(DefaultConfigYaml)
	} else if err != nil {
		return Settings{}, fmt.Errorf("loading config from %q: %w", path, err)
	}

	return unmarshalSettings(data)
}

func unmarshalSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("yaml.Unmarshal: %w", err)
	}
	if s.MaxRecursionDepth <= 0 {
		return Settings{}, fmt.Errorf("invalid configuration: maxRecursionDepth must be positive, got %d", s.MaxRecursionDepth)
	}
	return s, nil
}

func saveDefaultConfig(path string) error {
	dirPath := filepath.Dir(path)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}
	if err := os.WriteFile(path, DefaultConfigYaml, 0644); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}
	return nil
}
