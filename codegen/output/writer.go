package output

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/renameio/v2"
	"github.com/grafana/codejen"
	"github.com/hashicorp/go-multierror"

	"github.com/bexxmodd/theleague/codegen"
	"github.com/bexxmodd/theleague/logging"
)

const (
	dirPerms  = 0755
	filePerms = 0644
)

// Writer writes generated files below a root directory.
type Writer struct {
	Root string
}

// NewWriter returns a Writer for the root directory.
func NewWriter(root string) *Writer {
	return &Writer{
		Root: root,
	}
}

// Prepare creates the root directory if it does not exist.
func (w *Writer) Prepare() error {
	if err := os.MkdirAll(w.Root, dirPerms); err != nil {
		return &codegen.WriteError{Path: w.Root, Op: "mkdir", Err: err}
	}
	return nil
}

// Write writes every file, in lexicographic path order, replacing each target atomically.
// A file that cannot be written does not stop the batch: the remaining files are still written,
// and every failure is returned as a WriteError in one aggregated error. Files whose content is
// already up to date are left untouched.
func (w *Writer) Write(ctx context.Context, files codejen.Files) error {
	sorted := make(codejen.Files, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RelativePath < sorted[j].RelativePath
	})

	var errs error
	for i, f := range sorted {
		path := filepath.Join(w.Root, filepath.FromSlash(f.RelativePath))
		if i > 0 && sorted[i-1].RelativePath == f.RelativePath {
			errs = multierror.Append(errs, &codegen.WriteError{Path: path, Op: "plan", Err: errors.New("generated more than once")})
			continue
		}
		written, err := writeAtomic(path, f.Data)
		if err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "failed to write manifest", "path", path, "error", err)
			errs = multierror.Append(errs, err)
			continue
		}
		if written {
			logging.FromContext(ctx).InfoContext(ctx, "wrote manifest", "path", path, "bytes", len(f.Data))
		} else {
			logging.FromContext(ctx).DebugContext(ctx, "manifest unchanged", "path", path)
		}
	}
	return errs
}

// writeAtomic replaces path with data through a synced temporary file in the same directory,
// so path either keeps its old content or holds all of data. It returns false when path
// already held exactly data.
func writeAtomic(path string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerms); err != nil {
		return false, &codegen.WriteError{Path: path, Op: "mkdir", Err: err}
	}
	if err := renameio.WriteFile(path, data, filePerms, renameio.IgnoreUmask()); err != nil {
		return false, &codegen.WriteError{Path: path, Op: "replace", Err: err}
	}
	return true, nil
}
