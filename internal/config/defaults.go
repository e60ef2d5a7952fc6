// Package config holds the shared defaults for dirsweep: where the
// per-user configuration area lives, the documented default rule set, and
// the built-in skip paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables recognized by dirsweep.
const (
	// EnvConfigDir relocates the configuration area.
	EnvConfigDir = "DIRSWEEP_CONFIG_DIR"
	// EnvDebug enables verbose tracing of matching and skip decisions.
	EnvDebug = "DIRSWEEP_DEBUG"
)

// File names inside the configuration area.
const (
	RulesFileName    = "rules"
	SettingsFileName = "dirsweep.yaml"
)

// DefaultSkipPaths are traversal roots never entered, relative to the scan
// root. They cover system-managed trees that are both wrong to touch and
// expensive to walk.
var DefaultSkipPaths = []string{
	".Trash",
	"Library",
	".cache",
	".local/share/Trash",
}

// DefaultRules is the rule file written on first run. One rule per line:
// a directory name and the sibling sentinel file that confirms its type.
const DefaultRules = `# dirsweep rules
#
# Each line pairs a directory name with a sentinel file. A directory is
# marked excluded from backups when its name matches and the sentinel file
# exists next to it. Lines starting with '#' and blank lines are ignored.
#
# <directory name> <sentinel file>

node_modules package.json
.venv pyproject.toml
.venv requirements.txt
venv requirements.txt
vendor go.mod
vendor composer.json
target Cargo.toml
target pom.xml
build CMakeLists.txt
.gradle build.gradle
_build mix.exs
deps mix.exs
.stack-work stack.yaml
.tox tox.ini
.bundle Gemfile
Pods Podfile
bower_components bower.json
`

// DefaultSettings is the commented settings file written by `dirsweep init`.
// Every key is optional; flags and DIRSWEEP_* variables override it.
const DefaultSettings = `# dirsweep settings (optional)
#
# root: /home/me            # tree to scan (default: your home directory)
# marker: xattr             # xattr | command
# xattr_name: user.dirsweep.excluded
# query_command: [tmutil, isexcluded]
# mark_command: [tmutil, addexclusion]
# skip_paths:               # relative to root, or absolute
#   - .Trash
#   - Library
# dry_run: false
# output: auto              # auto | text | json
`

// Dir resolves the configuration area: $DIRSWEEP_CONFIG_DIR if set,
// otherwise dirsweep/ under the platform user config directory.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "dirsweep"), nil
}

// EnsureRulesFile creates the configuration area and writes the default
// rule file if none exists yet. It reports the rule file path and whether
// it was created by this call.
func EnsureRulesFile(dir string) (path string, created bool, err error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", false, fmt.Errorf("create config dir: %w", err)
	}
	path = filepath.Join(dir, RulesFileName)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}
	if err := os.WriteFile(path, []byte(DefaultRules), 0o644); err != nil {
		return "", false, fmt.Errorf("write default rule file: %w", err)
	}
	return path, true, nil
}
