package scanner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"spotitag/internal/tags"
)

// fakeProvider assigns timestamps by base name so tests control the
// ordering without touching filesystem metadata.
type fakeProvider struct {
	byName map[string]time.Time
}

func (f fakeProvider) Created(path string) time.Time {
	return f.byName[filepath.Base(path)]
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func paths(files []AudioFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = filepath.Base(f.Path)
	}
	return out
}

func TestDiscoverFiltersUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.flac"))
	touch(t, filepath.Join(dir, "b.mp3"))
	touch(t, filepath.Join(dir, "c.wav"))
	touch(t, filepath.Join(dir, "d.txt"))
	touch(t, filepath.Join(dir, "e.ogg"))
	touch(t, filepath.Join(dir, "cover.jpg"))

	files, unsupported, err := New(fakeProvider{}).Discover(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("discovered %v, want the three supported files", paths(files))
	}
	if unsupported != 3 {
		t.Errorf("unsupported = %d, want 3", unsupported)
	}
	for _, f := range files {
		if f.Format == tags.FormatUnknown {
			t.Errorf("file %s has unknown format", f.Path)
		}
	}
}

func TestDiscoverRecursion(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "top.flac"))
	touch(t, filepath.Join(dir, "sub", "nested.mp3"))
	touch(t, filepath.Join(dir, "sub", "deeper", "deep.wav"))

	flat, _, err := New(fakeProvider{}).Discover(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(flat) != 1 {
		t.Errorf("non-recursive discovered %v, want only the top-level file", paths(flat))
	}

	all, _, err := New(fakeProvider{}).Discover(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("recursive discovered %v, want all three", paths(all))
	}
}

func TestDiscoverOrdersEarliestFirst(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	provider := fakeProvider{byName: map[string]time.Time{
		"old.flac":    base,
		"newer.mp3":   base.Add(time.Hour),
		"newest.wav":  base.Add(2 * time.Hour),
		"oldest.flac": base.Add(-time.Hour),
	}}
	for name := range provider.byName {
		touch(t, filepath.Join(dir, name))
	}

	files, _, err := New(provider).Discover(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	got := paths(files)
	want := []string{"oldest.flac", "old.flac", "newer.mp3", "newest.wav"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDiscoverTieBreaksByPath(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.flac"))
	touch(t, filepath.Join(dir, "a.flac"))
	touch(t, filepath.Join(dir, "c.flac"))

	// All timestamps zero, so ordering falls back to the path.
	files, _, err := New(fakeProvider{}).Discover(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	got := paths(files)
	want := []string{"a.flac", "b.flac", "c.flac"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDiscoverUppercaseExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "SHOUTY.FLAC"))

	files, _, err := New(fakeProvider{}).Discover(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Format != tags.FormatFLAC {
		t.Errorf("discovered %+v, want the uppercase FLAC", files)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, _, err := New(fakeProvider{}).Discover(filepath.Join(t.TempDir(), "nope"), false); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestDiscoverRootIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.flac")
	touch(t, file)
	if _, _, err := New(fakeProvider{}).Discover(file, false); err == nil {
		t.Error("expected error for non-directory root")
	}
}

func TestModTimeProvider(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.flac")
	touch(t, file)
	want := time.Date(2022, 3, 4, 5, 6, 7, 0, time.UTC)
	if err := os.Chtimes(file, want, want); err != nil {
		t.Fatal(err)
	}

	got := ModTimeProvider{}.Created(file)
	if !got.Equal(want) {
		t.Errorf("Created = %v, want %v", got, want)
	}
}

func TestProvidersReturnZeroTimeForMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.flac")
	if !(ModTimeProvider{}).Created(missing).IsZero() {
		t.Error("ModTimeProvider should return zero time for a missing file")
	}
	if !(BirthTimeProvider{}).Created(missing).IsZero() {
		t.Error("BirthTimeProvider should return zero time for a missing file")
	}
}

func TestDetectTimestampProvider(t *testing.T) {
	if DetectTimestampProvider(t.TempDir()) == nil {
		t.Error("expected a provider for a valid root")
	}
	if p := DetectTimestampProvider(filepath.Join(t.TempDir(), "nope")); p == nil {
		t.Error("expected the fallback provider for a missing root")
	}
}
