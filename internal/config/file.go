package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// fileDefaults mirrors the global flags. Absent keys leave the flag default
// in place.
type fileDefaults struct {
	Debug     *bool   `yaml:"debug"`
	LogFormat *string `yaml:"log_format"`
	MaxDepth  *int    `yaml:"max_depth"`
}

// loadFile decodes a YAML defaults file. Unknown keys are rejected.
func loadFile(filename string) (fileDefaults, error) {
	f, err := os.Open(filename)
	if err != nil {
		return fileDefaults{}, fmt.Errorf("%w: %v", ErrConfigFile, err)
	}
	defer f.Close()

	var defaults fileDefaults
	decoder := yaml.NewDecoder(f, yaml.DisallowUnknownField())
	if err := decoder.Decode(&defaults); err != nil && !errors.Is(err, io.EOF) {
		return fileDefaults{}, fmt.Errorf("%w: %s: %v", ErrConfigFile, filename, err)
	}

	return defaults, nil
}

// apply copies file values into c for every flag not given explicitly.
func (d fileDefaults) apply(c *Config, explicit map[string]bool) {
	if d.Debug != nil && !explicit["debug"] {
		c.Debug = *d.Debug
	}
	if d.LogFormat != nil && !explicit["log-format"] {
		c.LogFormat = parseLogFormat(*d.LogFormat)
	}
	if d.MaxDepth != nil && !explicit["max-depth"] {
		c.MaxDepth = *d.MaxDepth
	}
}
