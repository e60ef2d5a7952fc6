// Package walker implements the prune-first depth-first traversal that
// produces matched directories one at a time.
//
// Pruning happens before descent, never as a post-filter: the directories
// this tool matches (caches, build outputs, vendor trees) are exactly the
// largest subtrees on disk, and descending into them would turn a
// near-instant scan into a multi-minute one.
package walker

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sweeplabs/dirsweep/internal/rules"
)

// Stats summarizes a traversal.
type Stats struct {
	Visited int // entries seen (files and directories)
	Matched int // directories emitted
	Pruned  int // subtrees cut by a skip path
	Errored int // entries skipped because of traversal errors
}

// MatchFunc consumes one matched directory. Returning an error aborts the
// walk and is propagated to the caller.
type MatchFunc func(dir string) error

// Walker traverses a tree against an immutable rule set.
type Walker struct {
	rules *rules.RuleSet
	log   *slog.Logger

	// visitHook observes every entry the walk reaches. Test-only.
	visitHook func(path string)
}

// New returns a Walker over the given rule set.
func New(rs *rules.RuleSet, log *slog.Logger) *Walker {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Walker{rules: rs, log: log}
}

// Walk traverses root depth-first and calls emit for every matched
// directory, in a single pass:
//
//  1. An entry equal to or under a skip path prunes its subtree outright:
//     no descent, no rule matching, no emission. Skip paths win over rules.
//  2. A directory whose base name equals a rule's directory name, with the
//     rule's sentinel file present in its parent, is emitted and then
//     pruned. Matched trees never contain further matches worth flagging.
//  3. Everything else descends normally.
//
// Symbolic links are never followed. A nonexistent root yields an empty
// walk, not an error. Unreadable subtrees are recorded in Stats and the
// walk continues elsewhere.
func (w *Walker) Walk(root string, emit MatchFunc) (Stats, error) {
	var st Stats

	info, err := os.Lstat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			w.log.Debug("root does not exist", "root", root)
			return st, nil
		}
		return st, err
	}
	if !info.IsDir() {
		return st, nil
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Permission denied or a vanished entry: skip it, keep going.
			st.Errored++
			w.log.Warn("cannot traverse", "path", path, "error", err)
			return nil
		}

		if w.visitHook != nil {
			w.visitHook(path)
		}
		st.Visited++

		if w.rules.ShouldSkip(path) {
			st.Pruned++
			w.log.Debug("pruned by skip path", "path", path)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if sentinel, ok := w.rules.Match(path); ok {
			st.Matched++
			w.log.Debug("matched", "path", path, "sentinel", sentinel)
			if err := emit(path); err != nil {
				return err
			}
			return fs.SkipDir
		}

		return nil
	})

	return st, walkErr
}
