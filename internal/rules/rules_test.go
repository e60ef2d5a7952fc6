package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSkip(t *testing.T) {
	set := New(nil, []string{"/home/u/.Trash", "/home/u/Library/"})

	tests := []struct {
		path string
		want bool
	}{
		{"/home/u/.Trash", true},
		{"/home/u/.Trash/old", true},
		{"/home/u/Library", true},
		{"/home/u/Library/Caches/deep/tree", true},
		{"/home/u/.Trashcan", false}, // prefix of the name, not a descendant
		{"/home/u/projects", false},
		{"/home/u", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, set.ShouldSkip(tt.path))
		})
	}
}

func TestMatchSentinelGating(t *testing.T) {
	dir := t.TempDir()
	vendor := filepath.Join(dir, "vendor")
	require.NoError(t, os.Mkdir(vendor, 0o755))

	set := New([]Rule{{Dir: "vendor", Sentinel: "go.mod"}}, nil)

	// No sibling go.mod yet.
	_, ok := set.Match(vendor)
	assert.False(t, ok)

	// Sentinel appears, the directory matches.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x\n"), 0o644))
	sentinel, ok := set.Match(vendor)
	assert.True(t, ok)
	assert.Equal(t, "go.mod", sentinel)
}

func TestMatchORSemanticsForDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	vendor := filepath.Join(dir, "vendor")
	require.NoError(t, os.Mkdir(vendor, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "composer.json"), []byte("{}"), 0o644))

	// Two rules for the same directory name: any present sentinel matches.
	set := New([]Rule{
		{Dir: "vendor", Sentinel: "go.mod"},
		{Dir: "vendor", Sentinel: "composer.json"},
	}, nil)

	sentinel, ok := set.Match(vendor)
	assert.True(t, ok)
	assert.Equal(t, "composer.json", sentinel)
}

func TestMatchUnknownName(t *testing.T) {
	set := New([]Rule{{Dir: "vendor", Sentinel: "go.mod"}}, nil)
	_, ok := set.Match("/somewhere/src")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules")
	require.NoError(t, os.WriteFile(path, []byte("# rules\nvendor go.mod\nbroken\n"), 0o644))

	rs, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Rule{{Dir: "vendor", Sentinel: "go.mod"}}, rs)
	assert.Len(t, warnings, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
