// Package scan wires the rule set, walker, and applier into the full
// pipeline: match a directory, apply the exclusion, report, then look for
// the next match. Nothing is buffered, so a long scan shows progress as it
// goes.
package scan

import (
	"context"
	"io"
	"log/slog"

	"github.com/sweeplabs/dirsweep/internal/exclude"
	"github.com/sweeplabs/dirsweep/internal/rules"
	"github.com/sweeplabs/dirsweep/internal/walker"
)

// Summary aggregates one run for the final report.
type Summary struct {
	RulesLoaded        int   `json:"rules_loaded"`
	Matched            int   `json:"matched"`
	Excluded           int   `json:"excluded"`
	AlreadyExcluded    int   `json:"already_excluded"`
	SkippedNotWritable int   `json:"skipped_not_writable"`
	Failed             int   `json:"failed"`
	Reclaimed          int64 `json:"reclaimed_bytes"`
	Visited            int   `json:"entries_visited"`
	Pruned             int   `json:"subtrees_pruned"`
	TraversalErrors    int   `json:"traversal_errors"`
}

// Reporter receives each outcome as it is produced.
type Reporter func(exclude.Outcome)

// Scanner runs the match-and-exclude pipeline over one root.
type Scanner struct {
	rules   *rules.RuleSet
	applier *exclude.Applier
	log     *slog.Logger
	dryRun  bool
}

// New builds a Scanner. With dryRun set, matches are reported but the
// applier is never invoked.
func New(rs *rules.RuleSet, applier *exclude.Applier, log *slog.Logger, dryRun bool) *Scanner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{rules: rs, applier: applier, log: log, dryRun: dryRun}
}

// Run walks root and applies the exclusion to every match, one at a time.
// Per-path failures land in the Summary; only a traversal setup failure is
// returned as an error.
func (s *Scanner) Run(ctx context.Context, root string, report Reporter) (Summary, error) {
	sum := Summary{RulesLoaded: s.rules.Len()}

	w := walker.New(s.rules, s.log)
	stats, err := w.Walk(root, func(dir string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.dryRun {
			s.log.Info("match (dry run)", "path", dir)
			if report != nil {
				report(exclude.Outcome{Path: dir, Status: exclude.StatusMatched, Size: exclude.SizeUnknown})
			}
			return nil
		}

		out := s.applier.Apply(ctx, dir)
		switch out.Status {
		case exclude.StatusExcluded:
			sum.Excluded++
			if out.Size > 0 {
				sum.Reclaimed += out.Size
			}
		case exclude.StatusAlreadyExcluded:
			sum.AlreadyExcluded++
		case exclude.StatusSkippedNotWritable:
			sum.SkippedNotWritable++
		case exclude.StatusFailed:
			sum.Failed++
			s.log.Warn("exclusion failed", "path", dir, "error", out.Err)
		}
		if report != nil {
			report(out)
		}
		return nil
	})
	if err != nil {
		return sum, err
	}

	sum.Matched = stats.Matched
	sum.Visited = stats.Visited
	sum.Pruned = stats.Pruned
	sum.TraversalErrors = stats.Errored
	return sum, nil
}
