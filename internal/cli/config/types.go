// Package config loads the CLI configuration for dirsweep.
//
// Settings come from four layers with the usual precedence, highest first:
// command-line flags, DIRSWEEP_* environment variables, the optional
// dirsweep.yaml settings file in the configuration area, and built-in
// defaults. The rule file itself is not YAML; it keeps its plain
// line-oriented format and is loaded by internal/rules.
package config

import (
	sharedcfg "github.com/sweeplabs/dirsweep/internal/config"
)

// Config holds all CLI configuration options.
type Config struct {
	Root         string   `koanf:"root"`
	Marker       string   `koanf:"marker"`
	XattrName    string   `koanf:"xattr_name"`
	QueryCommand []string `koanf:"query_command"`
	MarkCommand  []string `koanf:"mark_command"`
	SkipPaths    []string `koanf:"skip_paths"`
	DryRun       bool     `koanf:"dry_run"`
	Verbose      bool     `koanf:"verbose"`
	OutputFormat string   `koanf:"output"`

	// Resolved at load time, not settable through koanf layers.
	ConfigDir string `koanf:"-"`
	RulesFile string `koanf:"-"`
}

// Marker kinds accepted in configuration.
const (
	MarkerXattr   = "xattr"
	MarkerCommand = "command"
)

// Default configuration values.
const (
	DefaultMarker = MarkerXattr
	DefaultOutput = "auto"
)

// DefaultQueryCommand and DefaultMarkCommand target the macOS backup
// service; on other systems the command marker needs explicit settings.
var (
	DefaultQueryCommand = []string{"tmutil", "isexcluded"}
	DefaultMarkCommand  = []string{"tmutil", "addexclusion"}
)

// EnvPrefix is the prefix for environment overrides, e.g. DIRSWEEP_ROOT.
const EnvPrefix = "DIRSWEEP_"

// SettingsFileName re-exports the shared settings file name.
const SettingsFileName = sharedcfg.SettingsFileName
