// Package trash moves files into the user trash following the
// freedesktop.org layout, so that files replaced in place remain
// recoverable. There is deliberately no plain-delete fallback: when a
// file cannot reach the trash it stays where it is.
package trash

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/adrg/xdg"

	"spotitag/internal/shared"
)

// Trash is a single trash directory with the files/ and info/ layout.
type Trash struct {
	root string
}

// New returns the user's home trash under the XDG data directory.
func New() *Trash {
	return NewAt(filepath.Join(xdg.DataHome, "Trash"))
}

// NewAt returns a Trash rooted at dir.
func NewAt(dir string) *Trash {
	return &Trash{root: dir}
}

// Root returns the trash directory path.
func (t *Trash) Root() string { return t.root }

func (t *Trash) filesDir() string { return filepath.Join(t.root, "files") }
func (t *Trash) infoDir() string  { return filepath.Join(t.root, "info") }

// Dispose moves path into the trash. On return the file either sits in
// the trash or still sits at path; it never just disappears. The
// .trashinfo record is written first to reserve the trash name, then
// the file is moved, with a copy fallback when the trash lives on a
// different filesystem.
func (t *Trash) Dispose(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &shared.DisposeError{Path: path, Err: err}
	}
	if _, err := os.Stat(abs); err != nil {
		return &shared.DisposeError{Path: path, Err: err}
	}
	if err := os.MkdirAll(t.filesDir(), 0o700); err != nil {
		return &shared.DisposeError{Path: path, Err: err}
	}
	if err := os.MkdirAll(t.infoDir(), 0o700); err != nil {
		return &shared.DisposeError{Path: path, Err: err}
	}

	name, infoPath, err := t.reserveName(abs)
	if err != nil {
		return &shared.DisposeError{Path: path, Err: err}
	}

	target := filepath.Join(t.filesDir(), name)
	if err := os.Rename(abs, target); err != nil {
		if isCrossDevice(err) {
			if err := t.copyAcross(abs, target); err != nil {
				os.Remove(infoPath)
				return &shared.DisposeError{Path: path, Err: err}
			}
			return nil
		}
		os.Remove(infoPath)
		return &shared.DisposeError{Path: path, Err: err}
	}
	return nil
}

// reserveName claims a non-colliding name in the trash by exclusively
// creating its .trashinfo record.
func (t *Trash) reserveName(abs string) (name, infoPath string, err error) {
	base := filepath.Base(abs)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	for i := 0; ; i++ {
		name = base
		if i > 0 {
			name = fmt.Sprintf("%s.%d%s", stem, i, ext)
		}
		infoPath = filepath.Join(t.infoDir(), name+".trashinfo")
		f, openErr := os.OpenFile(infoPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if openErr != nil {
			if errors.Is(openErr, os.ErrExist) {
				continue
			}
			return "", "", openErr
		}
		record := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
			escapePath(abs), time.Now().Format("2006-01-02T15:04:05"))
		if _, err := f.WriteString(record); err != nil {
			f.Close()
			os.Remove(infoPath)
			return "", "", err
		}
		if err := f.Close(); err != nil {
			os.Remove(infoPath)
			return "", "", err
		}
		return name, infoPath, nil
	}
}

// copyAcross lands abs in the trash when rename cannot cross the
// filesystem boundary. The original is removed only after the copy is
// complete; if removing fails the copy is withdrawn so the file exists
// exactly once.
func (t *Trash) copyAcross(abs, target string) error {
	if err := shared.CopyFile(abs, target); err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		os.Remove(target)
		return err
	}
	return nil
}

// escapePath percent-encodes the path for the .trashinfo record,
// keeping the slashes.
func escapePath(p string) string {
	u := url.URL{Path: p}
	return u.EscapedPath()
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
