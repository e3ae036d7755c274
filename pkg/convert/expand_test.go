package convert_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaconv/pkg/convert"
)

func TestExpandInputsGlob(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.jpg"))
	b := touch(t, filepath.Join(dir, "b.jpg"))
	touch(t, filepath.Join(dir, "c.png"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub.jpg"), 0o755)) // dir matching the glob

	got, err := convert.ExpandInputs([]string{filepath.Join(dir, "*.jpg")}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, got, "glob matches are sorted and directories dropped")
}

func TestExpandInputsDirectory(t *testing.T) {
	dir := t.TempDir()
	top := touch(t, filepath.Join(dir, "top.png"))
	nested := touch(t, filepath.Join(dir, "sub", "deep.png"))

	got, err := convert.ExpandInputs([]string{dir}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{top}, got, "non-recursive stays at the top level")

	got, err = convert.ExpandInputs([]string{dir}, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{top, nested}, got)
}

func TestExpandInputsDeduplicates(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.jpg"))

	got, err := convert.ExpandInputs([]string{a, a, dir}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{a}, got)
}

func TestExpandInputsMissingPathPassesThrough(t *testing.T) {
	// Nonexistent plain paths survive expansion so the job builder can turn
	// them into skipped results instead of killing the batch.
	got, err := convert.ExpandInputs([]string{"/no/such/file.jpg"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"/no/such/file.jpg"}, got)
}

func TestExpandInputsBadGlob(t *testing.T) {
	_, err := convert.ExpandInputs([]string{"[unclosed"}, false)
	assert.Error(t, err)
}

func TestExpandInputsPreservesArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	b := touch(t, filepath.Join(dir, "b.jpg"))
	a := touch(t, filepath.Join(dir, "a.jpg"))

	got, err := convert.ExpandInputs([]string{b, a}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, got)
}
