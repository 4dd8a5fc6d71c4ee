// Package tags provides unified tag reading and writing for the audio
// formats the updater manages: FLAC, MP3, and WAV.
package tags

import (
	"path/filepath"
	"strings"
)

// File extensions handled by this package.
const (
	ExtFLAC = ".flac"
	ExtMP3  = ".mp3"
	ExtWAV  = ".wav"
)

// Format identifies the container of an audio file.
type Format int

const (
	FormatUnknown Format = iota
	FormatFLAC
	FormatMP3
	FormatWAV
)

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatFLAC:
		return "FLAC"
	case FormatMP3:
		return "MP3"
	case FormatWAV:
		return "WAV"
	default:
		return "unknown"
	}
}

// DetectFormat identifies the format from the file extension
// (case-insensitive). Content sniffing is not attempted.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtFLAC:
		return FormatFLAC
	case ExtMP3:
		return FormatMP3
	case ExtWAV:
		return FormatWAV
	default:
		return FormatUnknown
	}
}

// IsAudioFile reports whether the path carries a supported audio extension.
func IsAudioFile(path string) bool {
	return DetectFormat(path) != FormatUnknown
}

// TagMap holds the tag fields the updater reads and writes. Empty string
// means the field is absent; writers never clear a field for an empty
// value, so absent fields survive a write untouched. Track and disc
// numbers stay strings to round-trip values like "3/12" without loss.
type TagMap struct {
	Title       string
	Artist      string
	Album       string
	Date        string
	TrackNumber string
	DiscNumber  string
	Genre       string
	ISRC        string

	// CoverData is write-only: readers leave it nil, writers embed it as
	// the front cover when present. CoverMIME is optional; writers sniff
	// the image bytes when it is empty.
	CoverData []byte
	CoverMIME string
}

// IsEmpty reports whether no text field carries a value. Cover data is
// ignored; a tag set consisting only of a picture is still empty for
// matching purposes.
func (t TagMap) IsEmpty() bool {
	return t.Title == "" && t.Artist == "" && t.Album == "" &&
		t.Date == "" && t.TrackNumber == "" && t.DiscNumber == "" &&
		t.Genre == "" && t.ISRC == ""
}

// HasTitle reports whether a title is present.
func (t TagMap) HasTitle() bool { return t.Title != "" }
