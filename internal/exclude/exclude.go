// Package exclude applies backup-exclusion marks to matched directories.
//
// The backup service's marking operation is abstracted behind the Marker
// interface; the Applier wraps it with the idempotence check, the
// writability pre-flight, and best-effort size measurement, and turns every
// per-path problem into an Outcome instead of an error.
package exclude

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sweeplabs/dirsweep/internal/diskuse"
)

// SizeUnknown marks an Outcome whose disk usage could not be measured.
const SizeUnknown int64 = -1

// Status classifies the result of applying the exclusion to one path.
type Status int

const (
	// StatusMatched: the path matched a rule but nothing was applied.
	// Dry runs stop here.
	StatusMatched Status = iota
	// StatusExcluded: the path was newly marked excluded.
	StatusExcluded
	// StatusAlreadyExcluded: the path was marked on a previous run.
	StatusAlreadyExcluded
	// StatusSkippedNotWritable: the pre-flight write check failed, the
	// marker was never invoked.
	StatusSkippedNotWritable
	// StatusFailed: the marker itself failed on this path.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusExcluded:
		return "excluded"
	case StatusAlreadyExcluded:
		return "already excluded"
	case StatusSkippedNotWritable:
		return "skipped (not writable)"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is the per-path result reported to the operator as it happens.
type Outcome struct {
	Path   string
	Status Status
	Size   int64 // bytes on disk; SizeUnknown when measurement failed
	Err    error // set only for StatusFailed
}

// Marker is the backup service's exclusion primitive.
type Marker interface {
	// IsExcluded reports whether path is already marked excluded.
	IsExcluded(ctx context.Context, path string) (bool, error)
	// Exclude marks path as never-backed-up.
	Exclude(ctx context.Context, path string) error
}

// Applier consumes matched directories one at a time, strictly
// sequentially, and produces an Outcome per path.
type Applier struct {
	marker Marker
	log    *slog.Logger

	// measure and writable are swappable for tests.
	measure  func(path string) (int64, error)
	writable func(path string) bool
}

// NewApplier returns an Applier over the given marker.
func NewApplier(m Marker, log *slog.Logger) *Applier {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Applier{
		marker:   m,
		log:      log,
		measure:  diskuse.Size,
		writable: Writable,
	}
}

// Apply marks one matched directory excluded. It never returns an error:
// every failure mode is contained in the Outcome so the scan can continue
// with the next match.
func (a *Applier) Apply(ctx context.Context, path string) Outcome {
	excluded, err := a.marker.IsExcluded(ctx, path)
	if err != nil {
		return Outcome{Path: path, Status: StatusFailed, Size: SizeUnknown,
			Err: fmt.Errorf("query exclusion state: %w", err)}
	}
	if excluded {
		return Outcome{Path: path, Status: StatusAlreadyExcluded, Size: SizeUnknown}
	}

	// Marking a read-only tree (a read-only package cache, say) fails with
	// a tool-level error, so check up front instead.
	if !a.writable(path) {
		return Outcome{Path: path, Status: StatusSkippedNotWritable, Size: SizeUnknown}
	}

	if err := a.marker.Exclude(ctx, path); err != nil {
		return Outcome{Path: path, Status: StatusFailed, Size: SizeUnknown,
			Err: fmt.Errorf("mark excluded: %w", err)}
	}

	size, err := a.measure(path)
	if err != nil {
		a.log.Debug("size measurement failed", "path", path, "error", err)
		size = SizeUnknown
	}
	return Outcome{Path: path, Status: StatusExcluded, Size: size}
}
