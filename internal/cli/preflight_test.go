package cli_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaconv/internal/cli"
)

func TestCheckOutputRoot(t *testing.T) {
	t.Run("empty path is always fine", func(t *testing.T) {
		assert.NoError(t, cli.CheckOutputRoot(""))
	})

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "deep", "out") + "/"
		require.NoError(t, cli.CheckOutputRoot(dir))
		assert.DirExists(t, filepath.Join(filepath.Dir(dir)))
	})

	t.Run("file target probes its parent", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "out.mp4")
		assert.NoError(t, cli.CheckOutputRoot(target))
		assert.NoFileExists(t, target, "preflight must not create the destination")
	})

	t.Run("unwritable directory", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Getuid() == 0 {
			t.Skip("permission bits not enforceable here")
		}
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0o555))
		t.Cleanup(func() { os.Chmod(dir, 0o755) })

		err := cli.CheckOutputRoot(dir + "/")
		assert.Error(t, err)
	})
}
