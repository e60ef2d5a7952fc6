package walker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweeplabs/dirsweep/internal/rules"
	"github.com/sweeplabs/dirsweep/internal/testutil"
)

// buildTree creates the given relative paths under a temp root. Paths
// ending in "/" become directories, others become small files.
func buildTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		abs := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(p, "/")))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(abs, 0o755))
		} else {
			require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
			require.NoError(t, os.WriteFile(abs, []byte("x"), 0o644))
		}
	}
	return root
}

func collect(t *testing.T, w *Walker, root string) ([]string, Stats) {
	t.Helper()
	var matches []string
	stats, err := w.Walk(root, func(dir string) error {
		matches = append(matches, dir)
		return nil
	})
	require.NoError(t, err)
	return matches, stats
}

func TestWalkMatchesWithSentinel(t *testing.T) {
	root := buildTree(t,
		"proj/go.mod",
		"proj/vendor/github.com/lib/code.go",
		"other/vendor/", // no sibling go.mod
	)

	set := rules.New([]rules.Rule{{Dir: "vendor", Sentinel: "go.mod"}}, nil)
	w := New(set, testutil.NewTestLogger(t))

	matches, stats := collect(t, w, root)
	assert.Equal(t, []string{filepath.Join(root, "proj", "vendor")}, matches)
	assert.Equal(t, 1, stats.Matched)
}

func TestWalkSkipPathPruning(t *testing.T) {
	root := buildTree(t,
		"Library/Caches/huge/vendor/",
		"Library/Caches/huge/go.mod",
		"proj/go.mod",
		"proj/vendor/",
	)

	set := rules.New(
		[]rules.Rule{{Dir: "vendor", Sentinel: "go.mod"}},
		[]string{filepath.Join(root, "Library")},
	)
	w := New(set, testutil.NewTestLogger(t))

	var visited []string
	w.visitHook = func(path string) { visited = append(visited, path) }

	matches, stats := collect(t, w, root)

	// Only the match outside the skip path is emitted.
	assert.Equal(t, []string{filepath.Join(root, "proj", "vendor")}, matches)
	assert.Equal(t, 1, stats.Pruned)

	// Nothing under Library/ was ever visited: the subtree was pruned at
	// its root, not post-filtered.
	libChild := filepath.Join(root, "Library") + string(filepath.Separator)
	for _, p := range visited {
		assert.False(t, strings.HasPrefix(p, libChild), "visited %s inside skip path", p)
	}
}

func TestWalkSkipPathWinsOverRule(t *testing.T) {
	// The directory both matches a rule and sits under a skip path.
	root := buildTree(t,
		"skipped/go.mod",
		"skipped/vendor/",
	)

	set := rules.New(
		[]rules.Rule{{Dir: "vendor", Sentinel: "go.mod"}},
		[]string{filepath.Join(root, "skipped")},
	)
	w := New(set, testutil.NewTestLogger(t))

	matches, _ := collect(t, w, root)
	assert.Empty(t, matches)
}

func TestWalkNoRedescentIntoMatches(t *testing.T) {
	// A matched vendor/ contains another rule-named directory complete
	// with its own sentinel. It must not produce a second match.
	root := buildTree(t,
		"proj/go.mod",
		"proj/vendor/nested/package.json",
		"proj/vendor/nested/node_modules/dep/index.js",
	)

	set := rules.New([]rules.Rule{
		{Dir: "vendor", Sentinel: "go.mod"},
		{Dir: "node_modules", Sentinel: "package.json"},
	}, nil)
	w := New(set, testutil.NewTestLogger(t))

	var visited []string
	w.visitHook = func(path string) { visited = append(visited, path) }

	matches, _ := collect(t, w, root)
	assert.Equal(t, []string{filepath.Join(root, "proj", "vendor")}, matches)

	inside := filepath.Join(root, "proj", "vendor") + string(filepath.Separator)
	for _, p := range visited {
		assert.False(t, strings.HasPrefix(p, inside), "descended into matched directory: %s", p)
	}
}

func TestWalkUnreadableSubtree(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	root := buildTree(t,
		"blocked/secret/",
		"proj/go.mod",
		"proj/vendor/",
	)
	blocked := filepath.Join(root, "blocked")
	require.NoError(t, os.Chmod(blocked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(blocked, 0o755) })

	set := rules.New([]rules.Rule{{Dir: "vendor", Sentinel: "go.mod"}}, nil)
	w := New(set, testutil.NewTestLogger(t))

	// The unreadable subtree is recorded and the walk carries on: the
	// match elsewhere in the tree is still found.
	matches, stats := collect(t, w, root)
	assert.Equal(t, []string{filepath.Join(root, "proj", "vendor")}, matches)
	assert.Positive(t, stats.Errored)
}

func TestWalkMissingRoot(t *testing.T) {
	set := rules.New([]rules.Rule{{Dir: "vendor", Sentinel: "go.mod"}}, nil)
	w := New(set, testutil.NewTestLogger(t))

	matches, stats := collect(t, w, filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Empty(t, matches)
	assert.Zero(t, stats.Visited)
}

func TestWalkFileRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	set := rules.New([]rules.Rule{{Dir: "vendor", Sentinel: "go.mod"}}, nil)
	w := New(set, testutil.NewTestLogger(t))

	matches, stats := collect(t, w, file)
	assert.Empty(t, matches)
	assert.Zero(t, stats.Visited)
}

func TestWalkSymlinksNotFollowed(t *testing.T) {
	outside := buildTree(t, "proj/go.mod", "proj/vendor/")
	root := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "link")))

	set := rules.New([]rules.Rule{{Dir: "vendor", Sentinel: "go.mod"}}, nil)
	w := New(set, testutil.NewTestLogger(t))

	matches, _ := collect(t, w, root)
	assert.Empty(t, matches)
}

func TestWalkEndToEndScenario(t *testing.T) {
	// The classic case: a virtualenv next to requirements.txt, with a
	// deep, irrelevant site-packages tree inside it.
	root := buildTree(t,
		"proj/requirements.txt",
		"proj/.venv/lib/python3.12/site-packages/pkg/mod.py",
		"proj/src/main.py",
	)

	set := rules.New([]rules.Rule{{Dir: ".venv", Sentinel: "requirements.txt"}}, nil)
	w := New(set, testutil.NewTestLogger(t))

	var visited []string
	w.visitHook = func(path string) { visited = append(visited, path) }

	matches, stats := collect(t, w, root)
	require.Equal(t, []string{filepath.Join(root, "proj", ".venv")}, matches)
	assert.Equal(t, 1, stats.Matched)

	for _, p := range visited {
		assert.NotContains(t, p, "site-packages")
	}
}
