package main

import (
	"os"

	"github.com/goccy/go-yaml"
)

// defaults are optional tool settings read from ffigen.yaml in the working
// directory. Flags always win over the file.
type defaults struct {
	Write bool   `yaml:"write"` // rewrite files in place by default
	Color string `yaml:"color"` // diff coloring: auto, always, never
}

const defaultsFile = "ffigen.yaml"

func loadDefaults() defaults {
	d := defaults{Color: "auto"}
	data, err := os.ReadFile(defaultsFile)
	if err != nil {
		return d
	}
	// A broken settings file should not block the tool; fall back silently.
	_ = yaml.Unmarshal(data, &d)
	if d.Color == "" {
		d.Color = "auto"
	}
	return d
}
