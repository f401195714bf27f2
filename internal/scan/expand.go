package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// target is one file to scan, or the error that prevented finding it.
type target struct {
	path string
	err  error
}

// expandInputs turns files and directories into a de-duplicated list of
// archive paths. Directories are walked recursively and filtered by
// extension; explicitly named files are always kept. Order follows the
// inputs, with directory contents in lexical order.
func expandInputs(inputs []string, extensions []string) []target {
	seen := make(map[string]struct{})
	var out []target
	add := func(t target) {
		if t.err == nil {
			if _, dup := seen[t.path]; dup {
				return
			}
			seen[t.path] = struct{}{}
		}
		out = append(out, t)
	}

	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			add(target{path: input, err: fmt.Errorf("resolve path: %w", err)})
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			add(target{path: abs, err: err})
			continue
		}
		if !info.IsDir() {
			add(target{path: abs})
			continue
		}
		walkErr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				add(target{path: path, err: err})
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if matchesExtension(path, extensions) {
				add(target{path: path})
			}
			return nil
		})
		if walkErr != nil {
			add(target{path: abs, err: walkErr})
		}
	}
	return out
}

// MatchesExtension reports whether path ends in one of extensions, ignoring case.
func MatchesExtension(path string, extensions []string) bool {
	return matchesExtension(path, extensions)
}

func matchesExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext != "" && slices.Contains(extensions, ext)
}
