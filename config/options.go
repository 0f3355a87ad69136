package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Pink   = color.New(color.FgMagenta).SprintFunc()

	Ctx = context.Background()
)

const (
	DefaultWorkers = 8
	DefaultTimeout = 30

	// Some WAF setups drop plainly scripted user agents, so the default
	// mimics a browser. --agent overrides it for scans that should
	// identify themselves.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36" +
		" (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Options are the scan tunables. They come from an optional YAML file with
// command line flags layered on top by the cli package.
type Options struct {
	KBFile    string `yaml:"kb"`
	Workers   int    `yaml:"workers"`
	Timeout   int    `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
	Output    string `yaml:"output"`
	HistoryDB string `yaml:"history_db"`
}

// LoadOptions reads a YAML options file. An empty path returns defaults.
func LoadOptions(path string) (*Options, error) {
	opts := &Options{
		KBFile:    "moodle_plugins.json",
		Workers:   DefaultWorkers,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Output:    "output",
	}

	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options file: %w", err)
	}

	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("parsing options file %s: %w", path, err)
	}

	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	if opts.Timeout < 1 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	return opts, nil
}

// HTTPTimeout is the per-request bound for fingerprinting.
func (o *Options) HTTPTimeout() time.Duration {
	return time.Duration(o.Timeout) * time.Second
}
