package main

import (
	"flag"
	"io"

	"tlog.app/go/errors"

	"github.com/conure-db/conure-btree/pkg/config"
)

// LoadEffectiveConfig defines CLI flags, parses args, reads the optional
// YAML config, applies CLI overrides and returns the validated effective
// configuration.
func LoadEffectiveConfig(args []string, output io.Writer) (config.Config, error) {
	var (
		configPath  string
		historyFile string
		prompt      string
		logLevel    string
		httpAddr    string
		degree      settableInt
		seed        settableInt
		check       settableBool
		colorize    settableBool
	)

	fs := flag.NewFlagSet("conure-btree", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&configPath, "config", "", "path to YAML config file")
	fs.Var(&degree, "degree", "minimum degree of the tree (>= 2)")
	fs.Var(&check, "check", "validate tree invariants after every mutation")
	fs.Var(&colorize, "color", "colorize tree dumps")
	fs.StringVar(&historyFile, "history", "", "REPL history file")
	fs.StringVar(&prompt, "prompt", "", "REPL prompt")
	fs.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&httpAddr, "http-addr", "", "serve the HTTP API on this address as well")
	fs.Var(&seed, "seed", "insert this many generated entries at start-up")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfgFile, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	cli := CLIOverrides{
		HistoryFile: historyFile,
		Prompt:      prompt,
		LogLevel:    logLevel,
		HTTPAddr:    httpAddr,
	}
	if degree.set {
		cli.Degree = &degree.val
	}
	if seed.set {
		cli.Seed = &seed.val
	}
	if check.set {
		cli.CheckInvariants = &check.val
	}
	if colorize.set {
		cli.Color = &colorize.val
	}

	cfg := mergeConfig(cfgFile, cli)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
