package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// minFreeBytes is the floor below which a batch is refused outright; even a
// single re-encoded video will not fit.
const minFreeBytes = 64 << 20

// CheckOutputRoot verifies the explicit output root is usable before any
// worker starts: the directory can be created, a file can be written in it,
// and the volume has headroom. An empty path means outputs land beside their
// inputs, where per-job errors cover it.
func CheckOutputRoot(path string) error {
	if path == "" {
		return nil
	}

	dir := path
	if !strings.HasSuffix(path, string(os.PathSeparator)) && !strings.HasSuffix(path, "/") {
		if fi, err := os.Stat(path); err != nil || !fi.IsDir() {
			// Single-file destination; probe its parent.
			dir = filepath.Dir(path)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".mediaconv-preflight-*")
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	if usage, err := disk.Usage(dir); err == nil && usage.Free < minFreeBytes {
		return fmt.Errorf("output volume for %s has only %d MB free", dir, usage.Free>>20)
	}
	return nil
}
