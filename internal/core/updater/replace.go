package updater

import (
	"errors"
	"fmt"
	"os"

	"spotitag/internal/interfaces"
	"spotitag/internal/shared"
)

// Replacer runs the copy, write, dispose, promote sequence that swaps
// a rewritten file into place. The stages are plain function fields so
// tests can fail any one of them and check what survives.
type Replacer struct {
	// Copy duplicates src to dst.
	Copy func(src, dst string) error
	// Dispose moves the original out of the way, reversibly.
	Dispose func(path string) error
	// Promote renames the tagged temp copy onto the original path.
	Promote func(oldPath, newPath string) error
}

// NewReplacer wires the default stages around a disposal service.
func NewReplacer(disposal interfaces.DisposalService) *Replacer {
	return &Replacer{
		Copy:    shared.CopyFile,
		Dispose: disposal.Dispose,
		Promote: os.Rename,
	}
}

// Apply rewrites path through a temp copy: duplicate the original
// next to it, let write tag the copy, move the original to trash, then
// rename the copy into place. A failure in any stage before the
// promote deletes the temp copy and leaves the original untouched at
// its path; after the dispose the original is recoverable from trash.
func (r *Replacer) Apply(path string, write func(tmp string) error) error {
	tmp := shared.UniqueTempPath(path)

	if err := r.Copy(path, tmp); err != nil {
		os.Remove(tmp)
		return &shared.CopyError{Path: path, Err: err}
	}

	if err := write(tmp); err != nil {
		os.Remove(tmp)
		return &shared.TagWriteError{Path: path, Err: err}
	}

	if err := r.Dispose(path); err != nil {
		os.Remove(tmp)
		var disposeErr *shared.DisposeError
		if errors.As(err, &disposeErr) {
			return err
		}
		return &shared.DisposeError{Path: path, Err: err}
	}

	if err := r.Promote(tmp, path); err != nil {
		// The original is already in trash. The temp copy is the only
		// remaining audio, so it stays where it is.
		return fmt.Errorf("promote %s: %w", path, err)
	}
	return nil
}
