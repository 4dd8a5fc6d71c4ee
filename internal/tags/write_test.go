package tags

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"go.senan.xyz/taglib"

	"spotitag/internal/shared"
)

func testCoverBytes() []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xE0, 'c', 'o', 'v', 'e', 'r', '-', 'p', 'a', 'y', 'l', 'o', 'a', 'd', 0x01, 0x02, 0x03}
}

func flacComments(t *testing.T, path string) *flacvorbis.MetaDataBlockVorbisComment {
	t.Helper()
	f, err := flac.ParseFile(path)
	if err != nil {
		t.Fatalf("failed to parse FLAC: %v", err)
	}
	for _, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			comment, err := flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				t.Fatalf("failed to parse Vorbis comments: %v", err)
			}
			return comment
		}
	}
	t.Fatal("no Vorbis comment block found")
	return nil
}

func flacCommentValues(t *testing.T, comment *flacvorbis.MetaDataBlockVorbisComment, key string) []string {
	t.Helper()
	values, err := comment.Get(key)
	if err != nil {
		t.Fatalf("failed to get %s: %v", key, err)
	}
	return values
}

func TestWriteFLACReplacesOnlyManagedKeys(t *testing.T) {
	dir := t.TempDir()
	path := createBareFLAC(t, dir)
	seedVorbisComments(t, path, map[string]string{
		"TITLE":         "Old Title",
		"ALBUM":         "Old Album",
		"REPLAYGAIN_TG": "-6.2 dB",
	})

	err := writeFLAC(path, TagMap{Title: "New Title", Genre: "House"})
	if err != nil {
		t.Fatalf("writeFLAC() error: %v", err)
	}

	comment := flacComments(t, path)
	if got := flacCommentValues(t, comment, "TITLE"); len(got) != 1 || got[0] != "New Title" {
		t.Errorf("TITLE = %v, want single New Title", got)
	}
	if got := flacCommentValues(t, comment, "GENRE"); len(got) != 1 || got[0] != "House" {
		t.Errorf("GENRE = %v, want single House", got)
	}
	// Empty fields must not clear existing values.
	if got := flacCommentValues(t, comment, "ALBUM"); len(got) != 1 || got[0] != "Old Album" {
		t.Errorf("ALBUM = %v, want untouched Old Album", got)
	}
	// Unmanaged keys survive the rewrite.
	if got := flacCommentValues(t, comment, "REPLAYGAIN_TG"); len(got) != 1 || got[0] != "-6.2 dB" {
		t.Errorf("REPLAYGAIN_TG = %v, want untouched value", got)
	}
}

func TestWriteFLACReplacesCover(t *testing.T) {
	dir := t.TempDir()
	path := createBareFLAC(t, dir)

	first := TagMap{Title: "With Cover", CoverData: []byte{0xFF, 0xD8, 0xFF, 0xE0, 'o', 'l', 'd'}}
	if err := writeFLAC(path, first); err != nil {
		t.Fatalf("writeFLAC() first pass error: %v", err)
	}
	second := TagMap{CoverData: testCoverBytes()}
	if err := writeFLAC(path, second); err != nil {
		t.Fatalf("writeFLAC() second pass error: %v", err)
	}

	f, err := flac.ParseFile(path)
	if err != nil {
		t.Fatalf("failed to parse FLAC: %v", err)
	}
	var pictures []*flacpicture.MetadataBlockPicture
	for _, block := range f.Meta {
		if block.Type == flac.Picture {
			pic, err := flacpicture.ParseFromMetaDataBlock(*block)
			if err != nil {
				t.Fatalf("failed to parse picture block: %v", err)
			}
			pictures = append(pictures, pic)
		}
	}
	if len(pictures) != 1 {
		t.Fatalf("picture blocks = %d, want exactly 1", len(pictures))
	}
	if !bytes.Equal(pictures[0].ImageData, testCoverBytes()) {
		t.Error("embedded cover does not match the last write")
	}
	if pictures[0].MIME != "image/jpeg" {
		t.Errorf("cover MIME = %q, want sniffed image/jpeg", pictures[0].MIME)
	}
}

func TestWriteMP3PreservesUnmanagedFrames(t *testing.T) {
	dir := t.TempDir()
	path := createTestMP3(t, dir, nil)

	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("failed to open ID3 tag: %v", err)
	}
	id3tag.SetVersion(4)
	id3tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	id3tag.SetTitle("Old Title")
	id3tag.AddTextFrame("TPUB", id3v2.EncodingUTF8, "Old Label")
	if err := id3tag.Save(); err != nil {
		t.Fatalf("failed to seed ID3 tag: %v", err)
	}
	id3tag.Close()

	err = Write(path, TagMap{Title: "New Title", Genre: "Ambient"}, WriteOptions{})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	check, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("failed to reopen ID3 tag: %v", err)
	}
	defer check.Close()
	if got := check.Title(); got != "New Title" {
		t.Errorf("Title = %q, want New Title", got)
	}
	if got := check.Genre(); got != "Ambient" {
		t.Errorf("Genre = %q, want Ambient", got)
	}
	if got := textFrame(check, "TPUB"); got != "Old Label" {
		t.Errorf("TPUB = %q, want untouched Old Label", got)
	}
}

func TestWriteMP3ReplacesCover(t *testing.T) {
	dir := t.TempDir()
	path := createTestMP3(t, dir, nil)

	first := TagMap{Title: "T", CoverData: []byte{0xFF, 0xD8, 'o', 'l', 'd'}}
	if err := writeMP3(path, first); err != nil {
		t.Fatalf("writeMP3() first pass error: %v", err)
	}
	second := TagMap{CoverData: testCoverBytes()}
	if err := writeMP3(path, second); err != nil {
		t.Fatalf("writeMP3() second pass error: %v", err)
	}

	check, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("failed to reopen ID3 tag: %v", err)
	}
	defer check.Close()

	frames := check.GetFrames(check.CommonID("Attached picture"))
	if len(frames) != 1 {
		t.Fatalf("picture frames = %d, want exactly 1", len(frames))
	}
	pic, ok := frames[0].(id3v2.PictureFrame)
	if !ok {
		t.Fatalf("frame type = %T, want PictureFrame", frames[0])
	}
	if !bytes.Equal(pic.Picture, testCoverBytes()) {
		t.Error("embedded cover does not match the last write")
	}
}

func TestWriteWAVMergesWithExistingTags(t *testing.T) {
	dir := t.TempDir()
	path := createTestWAV(t, dir)

	seed := map[string][]string{
		taglib.Title: {"Old Title"},
		"COMPOSER":   {"Composer Name"},
	}
	if err := taglib.WriteTags(path, seed, 0); err != nil {
		t.Fatalf("failed to seed WAV tags: %v", err)
	}

	err := writeWAV(path, TagMap{Title: "New Title", Genre: "Jazz"}, false)
	if err != nil {
		t.Fatalf("writeWAV() error: %v", err)
	}

	raw, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatalf("failed to read WAV tags: %v", err)
	}
	if got := raw[taglib.Title]; len(got) != 1 || got[0] != "New Title" {
		t.Errorf("TITLE = %v, want single New Title", got)
	}
	if got := raw[taglib.Genre]; len(got) != 1 || got[0] != "Jazz" {
		t.Errorf("GENRE = %v, want single Jazz", got)
	}
	if got := raw["COMPOSER"]; len(got) != 1 || got[0] != "Composer Name" {
		t.Errorf("COMPOSER = %v, want untouched value", got)
	}
}

func TestWriteWAVCoverGating(t *testing.T) {
	dir := t.TempDir()
	cover := testCoverBytes()

	gated := createTestWAV(t, dir)
	if err := writeWAV(gated, TagMap{Title: "T", CoverData: cover}, false); err != nil {
		t.Fatalf("writeWAV() gated error: %v", err)
	}
	data, err := os.ReadFile(gated)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if bytes.Contains(data, cover) {
		t.Error("cover bytes embedded although embedding was disabled")
	}

	embedded := filepath.Join(dir, "embedded.wav")
	if err := os.WriteFile(embedded, mustReadFile(t, gated), 0o600); err != nil {
		t.Fatalf("failed to copy WAV: %v", err)
	}
	if err := writeWAV(embedded, TagMap{Title: "T", CoverData: cover}, true); err != nil {
		t.Fatalf("writeWAV() embed error: %v", err)
	}
	data, err = os.ReadFile(embedded)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if !bytes.Contains(data, cover) {
		t.Error("cover bytes missing although embedding was enabled")
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o600); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	err := Write(path, TagMap{Title: "x"}, WriteOptions{})
	if !errors.Is(err, shared.ErrUnsupportedFormat) {
		t.Errorf("Write() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestWriteMissingFile(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing.flac"), TagMap{Title: "x"}, WriteOptions{})
	if err == nil {
		t.Error("Write() on a missing file should error")
	}
}

func mustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return data
}
