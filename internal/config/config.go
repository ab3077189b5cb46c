package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML shape of .tally.yaml. Zero values mean "not
// set"; Resolve fills the gaps from defaults.
type FileConfig struct {
	Format       string `yaml:"format,omitempty"`
	Theme        string `yaml:"theme,omitempty"`
	SuiteSegment int    `yaml:"suite_segment,omitempty"`
	Jobs         int    `yaml:"jobs,omitempty"`
	Strict       bool   `yaml:"strict"`
	NoColor      bool   `yaml:"no_color"`
	CI           bool   `yaml:"ci"`
	Debug        bool   `yaml:"debug"`
}

// Defaults.
const (
	// DefaultFormat resolves to terminal on a TTY and plain otherwise.
	DefaultFormat       = "auto"
	DefaultTheme        = "default"
	DefaultSuiteSegment = 3
)

// LoadFile loads .tally.yaml, local directory first, then the user
// config dir. A missing file is not an error; an unreadable or invalid
// one produces a warning on stderr and falls back to the zero config.
func LoadFile() *FileConfig {
	cfg := &FileConfig{}

	path := configPath()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v. Using defaults.\n", path, err)
		}
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error parsing config file %s: %v. Using defaults.\n", path, err)
		return &FileConfig{}
	}
	return cfg
}

// configPath finds the .tally.yaml configuration file: local directory
// first, then <UserConfigDir>/tally/.tally.yaml.
func configPath() string {
	localPath := ".tally.yaml"
	if _, err := os.Stat(localPath); err == nil {
		return localPath
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "tally", ".tally.yaml")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
