package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the resolved run configuration: defaults, then an optional
// indexer.yaml, then CLI flag overrides, in that order.
type Config struct {
	Source  string `yaml:"source"`
	Output  string `yaml:"output"`
	Verbose bool   `yaml:"verbose"`
	All     bool   `yaml:"all"`
}

// loadConfig builds a Config the same way the teacher's builder/config.Load
// does: defaults, optional YAML file, CLI flag overrides.
func loadConfig(args []string) *Config {
	cfg := &Config{}

	if data, err := os.ReadFile("indexer.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			fmt.Printf("⚠️ Failed to parse indexer.yaml: %v\n", err)
		}
	}

	fs := flag.NewFlagSet("indexer", flag.ExitOnError)
	source := fs.String("source", cfg.Source, "article source directory")
	output := fs.String("output", cfg.Output, "index output directory")
	verbose := fs.Bool("verbose", cfg.Verbose, "print per-file diagnostics")
	all := fs.Bool("all", cfg.All, "also index non-article pages")
	_ = fs.Parse(args)

	cfg.Source = *source
	cfg.Output = *output
	cfg.Verbose = *verbose
	cfg.All = *all
	return cfg
}
