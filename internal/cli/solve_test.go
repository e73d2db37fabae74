package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRandSpec(t *testing.T) {
	n, m, err := parseRandSpec("10,3")
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, 3, m)

	n, m, err = parseRandSpec(" 7 , 0 ")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 0, m)

	_, _, err = parseRandSpec("10")
	assert.Error(t, err)
	_, _, err = parseRandSpec("x,y")
	assert.Error(t, err)
}

func TestSolveCommandOnFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triangle.txt")
	require.NoError(t, os.WriteFile(path, []byte("a b\nb c\nc a\n"), 0644))

	c := New(os.Stderr, log.WarnLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"solve", path})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "size: 1")
}

func TestSolveCommandRand(t *testing.T) {
	c := New(os.Stderr, log.WarnLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"solve", "--rand", "8,1", "--seed", "7"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "solution:")
}

func TestSolveCommandNeedsInput(t *testing.T) {
	c := New(os.Stderr, log.WarnLevel)
	root := c.RootCommand()
	root.SetArgs([]string{"solve"})
	root.SetErr(&bytes.Buffer{})
	assert.ErrorIs(t, root.Execute(), errNoInput)
}
