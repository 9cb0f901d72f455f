package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	"tlog.app/go/errors"

	"github.com/conure-db/conure-btree/btree"
	"github.com/conure-db/conure-btree/pkg/logging"
)

// Config defines runtime configuration loaded from YAML and/or flags.
type Config struct {
	Degree          int    `yaml:"degree"`
	CheckInvariants bool   `yaml:"check_invariants"`
	Color           bool   `yaml:"color"`
	HistoryFile     string `yaml:"history_file"`
	Prompt          string `yaml:"prompt"`
	LogLevel        string `yaml:"log_level"`
	Seed            int    `yaml:"seed"`
	HTTPAddr        string `yaml:"http_addr"`
}

// Load reads a YAML config file from path. If path is empty or the file
// does not exist, returns an empty Config and nil error.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "open config")
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close config file %q: %v\n", path, closeErr)
		}
	}()
	data, err := io.ReadAll(f)
	if err != nil {
		return cfg, errors.Wrap(err, "read config %v", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse config %v", path)
	}
	return cfg, nil
}

// Validate checks an effective configuration
func (c Config) Validate() error {
	if c.Degree < 2 {
		return errors.New("degree must be at least 2, got %d", c.Degree)
	}
	if c.Degree > btree.MaxDegree {
		return errors.New("degree must be at most %d, got %d", btree.MaxDegree, c.Degree)
	}
	if c.Seed < 0 {
		return errors.New("seed must not be negative, got %d", c.Seed)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return errors.New("unknown log level %q", c.LogLevel)
	}
	return nil
}
