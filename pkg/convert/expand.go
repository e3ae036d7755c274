package convert

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandInputs turns the raw CLI inputs into a flat, ordered, de-duplicated
// candidate list. Glob patterns are expanded, directories are listed
// (recursively only when asked), and plain paths pass through untouched so
// the job builder can report missing files as skipped results instead of
// aborting the batch.
func ExpandInputs(inputs []string, recursive bool) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})

	add := func(path string) {
		key := filepath.Clean(path)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}

	for _, input := range inputs {
		switch {
		case strings.ContainsAny(input, "*?["):
			matches, err := filepath.Glob(input)
			if err != nil {
				return nil, fmt.Errorf("bad glob pattern %q: %w", input, err)
			}
			sort.Strings(matches)
			for _, m := range matches {
				if fi, err := os.Stat(m); err == nil && fi.IsDir() {
					continue
				}
				add(m)
			}

		case isDir(input):
			files, err := listDir(input, recursive)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				add(f)
			}

		default:
			add(input)
		}
	}

	return out, nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// listDir returns the regular files under dir in lexical order. Symlinks are
// skipped to keep traversal bounded.
func listDir(dir string, recursive bool) ([]string, error) {
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", dir, err)
		}
		var files []string
		for _, e := range entries {
			if e.Type().IsRegular() {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
		return files, nil
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", dir, err)
	}
	return files, nil
}
