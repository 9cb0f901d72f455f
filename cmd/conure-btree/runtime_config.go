package main

import (
	"github.com/conure-db/conure-btree/db"
	"github.com/conure-db/conure-btree/pkg/config"
)

const (
	defaultPrompt   = "> "
	defaultLogLevel = "info"
)

// CLIOverrides carries CLI-provided values. Empty strings mean "not set".
// For booleans and integers, a pointer is used to detect if the flag was
// explicitly set.
type CLIOverrides struct {
	Degree          *int
	CheckInvariants *bool
	Color           *bool
	HistoryFile     string
	Prompt          string
	LogLevel        string
	Seed            *int
	HTTPAddr        string
}

func mergeConfig(fileCfg config.Config, cli CLIOverrides) config.Config {
	cfg := fileCfg

	// Apply CLI overrides when provided
	if cli.Degree != nil {
		cfg.Degree = *cli.Degree
	}
	if cli.CheckInvariants != nil {
		cfg.CheckInvariants = *cli.CheckInvariants
	}
	if cli.Color != nil {
		cfg.Color = *cli.Color
	}
	if cli.HistoryFile != "" {
		cfg.HistoryFile = cli.HistoryFile
	}
	if cli.Prompt != "" {
		cfg.Prompt = cli.Prompt
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if cli.HTTPAddr != "" {
		cfg.HTTPAddr = cli.HTTPAddr
	}
	if cli.Seed != nil {
		cfg.Seed = *cli.Seed
	}

	// Defaults for any still-empty values
	if cfg.Degree == 0 {
		cfg.Degree = db.DefaultDegree
	}
	if cfg.Prompt == "" {
		cfg.Prompt = defaultPrompt
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	return cfg
}
