// Package config loads the demo program's settings.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Demo configures the showcase program.
type Demo struct {
	// RemovalDelayMS keeps dismissed overlays mounted this long so the
	// exit treatment is visible. Zero unmounts immediately.
	RemovalDelayMS int `yaml:"removal_delay_ms"`
	// OutsideDismiss closes an open overlay on pointer interaction
	// outside it.
	OutsideDismiss *bool `yaml:"outside_dismiss"`
	// ConsumeOutside swallows the dismissing interaction instead of
	// passing it through to the primitive underneath.
	ConsumeOutside bool `yaml:"consume_outside"`
	// LogFile receives structured logs; empty disables logging.
	LogFile string `yaml:"log_file"`
}

// Default returns the settings used when no file is given.
func Default() Demo {
	return Demo{
		RemovalDelayMS: 300,
	}
}

// Load reads the config file at path. A missing file yields defaults.
func Load(path string) (Demo, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// RemovalDelay returns the removal delay as a duration.
func (d Demo) RemovalDelay() time.Duration {
	return time.Duration(d.RemovalDelayMS) * time.Millisecond
}

// OutsideDismissEnabled resolves the optional flag; outside dismissal
// is on unless the file says otherwise.
func (d Demo) OutsideDismissEnabled() bool {
	if d.OutsideDismiss == nil {
		return true
	}
	return *d.OutsideDismiss
}

// BindFlags registers the demo's command-line flags on the given set.
// Flag values override the file where set.
func BindFlags(fs *pflag.FlagSet, path *string, logFile *string) {
	fs.StringVarP(path, "config", "c", "", "path to YAML config file")
	fs.StringVar(logFile, "log-file", "", "write structured logs to this file")
}
