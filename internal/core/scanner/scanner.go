// Package scanner finds the audio files of a music directory and
// orders them for processing.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"spotitag/internal/tags"
)

// AudioFile is one discovered file, with the timestamp used for
// ordering.
type AudioFile struct {
	Path    string
	Format  tags.Format
	Created time.Time
}

// Scanner discovers audio files under a root directory.
type Scanner struct {
	timestamps TimestampProvider
}

// New returns a Scanner ordering files with the given provider. A nil
// provider falls back to modification times.
func New(timestamps TimestampProvider) *Scanner {
	if timestamps == nil {
		timestamps = ModTimeProvider{}
	}
	return &Scanner{timestamps: timestamps}
}

// Discover returns every supported audio file under root, earliest
// first, along with the number of files passed over for carrying an
// unsupported extension. Without recursive only direct children are
// considered. Unreadable subtrees and files are skipped; only an
// unusable root is an error. Ties order by path so runs are
// deterministic.
func (s *Scanner) Discover(root string, recursive bool) ([]AudioFile, int, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, 0, err
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("not a directory: %s", root)
	}

	var files []AudioFile
	unsupported := 0
	add := func(path string) {
		format := tags.DetectFormat(path)
		if format == tags.FormatUnknown {
			unsupported++
			return
		}
		files = append(files, AudioFile{
			Path:    path,
			Format:  format,
			Created: s.timestamps.Created(path),
		})
	}

	if recursive {
		_ = filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
			if walkErr != nil {
				return nil
			}
			if d.IsDir() {
				return nil
			}
			add(path)
			return nil
		})
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, 0, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			add(filepath.Join(root, entry.Name()))
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Created.Equal(files[j].Created) {
			return files[i].Path < files[j].Path
		}
		return files[i].Created.Before(files[j].Created)
	})
	return files, unsupported, nil
}
