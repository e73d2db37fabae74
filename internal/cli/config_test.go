package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckrueger/catforest/pkg/solve"
)

func TestLoadOptionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solver.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[solver]
slow_lower_bound_every = 4
use_bbridge_rule = false
y_lookahead_max = 12
`), 0644))

	opts := solve.DefaultOptions()
	require.NoError(t, loadOptionsFile(path, &opts))

	assert.Equal(t, 4, opts.SlowLowerBoundEvery)
	assert.False(t, opts.UseBBridgeRule)
	assert.Equal(t, 12, opts.YLookaheadMax)
	// untouched keys keep their defaults
	assert.Equal(t, solve.DefaultOptions().FastLowerBoundEvery, opts.FastLowerBoundEvery)
	assert.Equal(t, solve.DefaultOptions().KeepSearchingAboveBnum, opts.KeepSearchingAboveBnum)
}

func TestLoadOptionsFileRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solver.toml")
	require.NoError(t, os.WriteFile(path, []byte("[solver]\nnope = 1\n"), 0644))

	opts := solve.DefaultOptions()
	assert.Error(t, loadOptionsFile(path, &opts))
}

func TestLoadOptionsFileMissing(t *testing.T) {
	opts := solve.DefaultOptions()
	assert.Error(t, loadOptionsFile("/does/not/exist.toml", &opts))
}
