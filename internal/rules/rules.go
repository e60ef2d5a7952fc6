// Package rules holds the directory classification rules and skip paths
// that drive a scan.
//
// A rule pairs a directory base name with a sentinel file name: a directory
// matches when its base name equals the rule's directory name and the
// sentinel file exists next to it (in the directory's parent). Skip paths
// are absolute paths whose entire subtrees are excluded from traversal.
package rules

import (
	"os"
	"path/filepath"
	"strings"
)

// Rule classifies a directory by its base name and a sibling sentinel file.
type Rule struct {
	Dir      string
	Sentinel string
}

// RuleSet is an immutable set of classification rules and skip paths,
// built once at startup and shared read-only by the walker.
type RuleSet struct {
	rules []Rule
	byDir map[string][]string
	skips []string
}

// New builds a RuleSet. Skip paths are cleaned; duplicates in rules are kept
// (they only cost redundant sentinel checks). A directory name mapped to
// several sentinels matches if any of them is present.
func New(rs []Rule, skipPaths []string) *RuleSet {
	set := &RuleSet{
		rules: rs,
		byDir: make(map[string][]string, len(rs)),
		skips: make([]string, 0, len(skipPaths)),
	}
	for _, r := range rs {
		set.byDir[r.Dir] = append(set.byDir[r.Dir], r.Sentinel)
	}
	for _, p := range skipPaths {
		if p == "" {
			continue
		}
		set.skips = append(set.skips, filepath.Clean(p))
	}
	return set
}

// Rules returns the rules in insertion order.
func (s *RuleSet) Rules() []Rule { return s.rules }

// SkipPaths returns the cleaned skip paths.
func (s *RuleSet) SkipPaths() []string { return s.skips }

// Len returns the number of loaded rules.
func (s *RuleSet) Len() int { return len(s.rules) }

// ShouldSkip reports whether path equals a skip path or lies under one.
func (s *RuleSet) ShouldSkip(path string) bool {
	path = filepath.Clean(path)
	for _, sp := range s.skips {
		if path == sp || strings.HasPrefix(path, sp+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Match reports whether dir matches a rule: its base name must be a known
// directory name and one of the associated sentinel files must exist in
// dir's parent. Returns the sentinel that fired, for tracing.
func (s *RuleSet) Match(dir string) (string, bool) {
	sentinels, ok := s.byDir[filepath.Base(dir)]
	if !ok {
		return "", false
	}
	parent := filepath.Dir(dir)
	for _, sentinel := range sentinels {
		if _, err := os.Stat(filepath.Join(parent, sentinel)); err == nil {
			return sentinel, true
		}
	}
	return "", false
}
