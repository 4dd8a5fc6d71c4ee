package tags

import (
	"fmt"
	"os"

	"spotitag/internal/shared"
)

// WriteOptions controls format-specific writer behavior.
type WriteOptions struct {
	// WavEmbedCover enables ID3 cover embedding in WAV files. Off by
	// default because several players refuse WAV files with an id3 chunk.
	WavEmbedCover bool
}

// Write applies the tag fields to an audio file in place. Non-empty
// fields replace their existing counterparts, empty fields leave the
// file's values untouched, and unmanaged tags survive. When CoverData
// is present the embedded front cover is replaced.
func Write(path string, t TagMap, opts WriteOptions) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	switch DetectFormat(path) {
	case FormatFLAC:
		return writeFLAC(path, t)
	case FormatMP3:
		return writeMP3(path, t)
	case FormatWAV:
		return writeWAV(path, t, opts.WavEmbedCover)
	default:
		return shared.ErrUnsupportedFormat
	}
}

// DetectImageFormat sniffs the MIME type of image data from its magic
// bytes. Unknown data defaults to JPEG.
func DetectImageFormat(data []byte) string {
	if len(data) < 4 {
		return "image/jpeg"
	}
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return "image/png"
	}
	if data[0] == 0xFF && data[1] == 0xD8 {
		return "image/jpeg"
	}
	if len(data) >= 12 && data[0] == 'R' && data[1] == 'I' && data[2] == 'F' && data[3] == 'F' &&
		data[8] == 'W' && data[9] == 'E' && data[10] == 'B' && data[11] == 'P' {
		return "image/webp"
	}
	if data[0] == 'G' && data[1] == 'I' && data[2] == 'F' && data[3] == '8' {
		return "image/gif"
	}
	return "image/jpeg"
}

// coverMIME resolves the MIME type to record next to embedded cover art.
func (t TagMap) coverMIME() string {
	if t.CoverMIME != "" {
		return t.CoverMIME
	}
	return DetectImageFormat(t.CoverData)
}
