package engine

import (
	"os"
	"path/filepath"

	"github.com/birb-build/birb/internal/output"
)

// Cleanup removes prior build artifacts from the output directory before a
// build. Only direct children are touched: regular files and symlinks are
// removed, directories only when empty. Every failure is reported per entry
// and skipped; cleanup never aborts the parent build.
func Cleanup(dir string, out *output.Writer) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		out.Warning("cannot read output directory %s: %v", dir, err)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		// os.Remove deletes files, symlinks, and empty directories, and
		// fails on non-empty directories, which is exactly the contract.
		if err := os.Remove(path); err != nil {
			out.Warning("failed to delete %s: %v", path, err)
			continue
		}
		out.Info("Deleted: %s", path)
	}
}
