package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweeplabs/dirsweep/internal/exclude"
	"github.com/sweeplabs/dirsweep/internal/rules"
	"github.com/sweeplabs/dirsweep/internal/testutil"
)

// memMarker is an in-memory exclusion primitive.
type memMarker struct {
	excluded     map[string]bool
	excludeCalls int
}

func newMemMarker() *memMarker {
	return &memMarker{excluded: make(map[string]bool)}
}

func (m *memMarker) IsExcluded(_ context.Context, path string) (bool, error) {
	return m.excluded[path], nil
}

func (m *memMarker) Exclude(_ context.Context, path string) error {
	m.excludeCalls++
	m.excluded[path] = true
	return nil
}

func buildHome(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	mk := func(rel string) {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755))
	}
	write := func(rel string, size int) {
		require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(rel)), make([]byte, size), 0o644))
	}

	mk("proj/.venv/lib/site-packages")
	write("proj/requirements.txt", 10)
	write("proj/.venv/lib/site-packages/mod.py", 500)

	mk("api/node_modules/lodash")
	write("api/package.json", 10)
	write("api/node_modules/lodash/index.js", 300)

	mk(".Trash/old/node_modules")
	write(".Trash/old/package.json", 10)

	return root
}

func newRuleSet(root string) *rules.RuleSet {
	return rules.New(
		[]rules.Rule{
			{Dir: ".venv", Sentinel: "requirements.txt"},
			{Dir: "node_modules", Sentinel: "package.json"},
		},
		[]string{filepath.Join(root, ".Trash")},
	)
}

func TestRunPipeline(t *testing.T) {
	root := buildHome(t)
	marker := newMemMarker()
	log := testutil.NewTestLogger(t)

	applier := exclude.NewApplier(marker, log)
	s := New(newRuleSet(root), applier, log, false)

	var streamed []exclude.Outcome
	sum, err := s.Run(context.Background(), root, func(out exclude.Outcome) {
		streamed = append(streamed, out)
	})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.RulesLoaded)
	assert.Equal(t, 2, sum.Matched)
	assert.Equal(t, 2, sum.Excluded)
	assert.Zero(t, sum.AlreadyExcluded)
	assert.Zero(t, sum.Failed)
	assert.Equal(t, int64(800), sum.Reclaimed)
	assert.Equal(t, 1, sum.Pruned, "the trash subtree is pruned, not matched")
	require.Len(t, streamed, 2)
	for _, out := range streamed {
		assert.Equal(t, exclude.StatusExcluded, out.Status)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	root := buildHome(t)
	marker := newMemMarker()
	log := testutil.NewTestLogger(t)
	applier := exclude.NewApplier(marker, log)

	s := New(newRuleSet(root), applier, log, false)

	_, err := s.Run(context.Background(), root, nil)
	require.NoError(t, err)
	firstCalls := marker.excludeCalls

	sum, err := s.Run(context.Background(), root, nil)
	require.NoError(t, err)

	assert.Equal(t, firstCalls, marker.excludeCalls, "second run must not invoke the primitive")
	assert.Equal(t, 2, sum.AlreadyExcluded)
	assert.Zero(t, sum.Excluded)
}

func TestRunDryRun(t *testing.T) {
	root := buildHome(t)
	marker := newMemMarker()
	log := testutil.NewTestLogger(t)
	applier := exclude.NewApplier(marker, log)

	s := New(newRuleSet(root), applier, log, true)

	var streamed []exclude.Outcome
	sum, err := s.Run(context.Background(), root, func(out exclude.Outcome) {
		streamed = append(streamed, out)
	})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Matched)
	assert.Zero(t, marker.excludeCalls, "dry run must not mark anything")
	assert.Zero(t, sum.Excluded)
	require.Len(t, streamed, 2)
	for _, out := range streamed {
		assert.Equal(t, exclude.StatusMatched, out.Status, "a dry run reports a match, not an exclusion")
	}
}

func TestRunMissingRoot(t *testing.T) {
	marker := newMemMarker()
	log := testutil.NewTestLogger(t)
	applier := exclude.NewApplier(marker, log)
	s := New(rules.New(nil, nil), applier, log, false)

	sum, err := s.Run(context.Background(), filepath.Join(t.TempDir(), "gone"), nil)
	require.NoError(t, err)
	assert.Zero(t, sum.Matched)
}

func TestRunCancelledContext(t *testing.T) {
	root := buildHome(t)
	marker := newMemMarker()
	log := testutil.NewTestLogger(t)
	applier := exclude.NewApplier(marker, log)
	s := New(newRuleSet(root), applier, log, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, root, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
