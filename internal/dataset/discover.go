package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"sigview/internal/sigmf"
)

// Discover returns every metadata document under root in a deterministic
// depth-first order (entries sorted by name within each directory). Symbolic
// links are followed, so a directory reachable under several names is listed
// under each of them. A link back to a directory on the current path is a
// loop and is not descended. Unreadable directories and broken links to metadata documents are
// returned as failures of kind KindWalk. A missing or unreadable root is an
// error.
func Discover(ctx context.Context, root string, layout sigmf.Layout) ([]string, []FileFailure, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("root %s is not a directory", root)
	}

	w := &walker{layout: layout, ancestors: make(map[string]struct{})}
	if err := w.walk(ctx, root, true); err != nil {
		return nil, nil, err
	}
	return w.found, w.failures, nil
}

type walker struct {
	layout sigmf.Layout
	// ancestors holds the resolved paths of the directories being walked.
	ancestors map[string]struct{}
	found     []string
	failures  []FileFailure
}

func (w *walker) walk(ctx context.Context, dir string, isRoot bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		if isRoot {
			return fmt.Errorf("resolve root: %w", err)
		}
		w.failures = append(w.failures, FileFailure{Path: dir, Kind: KindWalk, Message: err.Error()})
		return nil
	}
	if _, loop := w.ancestors[real]; loop {
		return nil
	}
	w.ancestors[real] = struct{}{}
	defer delete(w.ancestors, real)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if isRoot {
			return fmt.Errorf("read root: %w", err)
		}
		w.failures = append(w.failures, FileFailure{Path: dir, Kind: KindWalk, Message: err.Error()})
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		mode := entry.Type()

		if mode&os.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				if w.layout.IsMetaFile(path) {
					w.failures = append(w.failures, FileFailure{Path: path, Kind: KindWalk, Message: err.Error()})
				}
				continue
			}
			mode = target.Mode().Type()
		}

		switch {
		case mode.IsDir():
			if err := w.walk(ctx, path, false); err != nil {
				return err
			}
		case mode.IsRegular() && w.layout.IsMetaFile(path):
			w.found = append(w.found, path)
		}
	}
	return nil
}
