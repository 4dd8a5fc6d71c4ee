package tags

import (
	"errors"
	"os"
	"strconv"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"

	"spotitag/internal/shared"
)

// Read reads the tag fields from an audio file. A file without any tags
// yields a zero TagMap and no error; errors are reserved for files that
// could not be parsed at all. The title is never substituted from the
// filename here, that decision belongs to the caller.
func Read(path string) (TagMap, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return TagMap{}, shared.ErrUnsupportedFormat
	}

	// dhowden/tag has no RIFF support, so WAV goes straight to TagLib.
	if format == FormatWAV {
		return readWithTaglib(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return TagMap{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return TagMap{}, nil
		}
		// dhowden/tag chokes on some UTF-16 ID3 frames and some FLAC
		// files; retry with a format-specific reader.
		switch format {
		case FormatMP3:
			return readMP3Fallback(path)
		case FormatFLAC:
			return readWithTaglib(path)
		}
		return TagMap{}, err
	}

	artist := m.Artist()
	if artist == "" {
		artist = m.AlbumArtist()
	}
	track, _ := m.Track()
	disc, _ := m.Disc()

	// Prefer the raw date comment, it keeps full YYYY-MM-DD precision
	// and covers ID3v2.4 TDRC frames that Year() does not parse.
	date := rawString(m, "date", "DATE", "TDRC", "TYER")
	if date == "" {
		date = yearString(m.Year())
	}

	return TagMap{
		Title:       m.Title(),
		Artist:      artist,
		Album:       m.Album(),
		Date:        date,
		TrackNumber: itoaNonZero(track),
		DiscNumber:  itoaNonZero(disc),
		Genre:       m.Genre(),
		ISRC:        rawString(m, "isrc", "ISRC", "TSRC"),
	}, nil
}

// readMP3Fallback reads MP3 tags using only the id3v2 library.
func readMP3Fallback(path string) (TagMap, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return TagMap{}, err
	}
	defer id3tag.Close()

	artist := id3tag.Artist()
	if artist == "" {
		artist = textFrame(id3tag, "TPE2")
	}

	// TDRC is the ID3v2.4 recording date, TYER the v2.3 year.
	date := textFrame(id3tag, "TDRC")
	if date == "" {
		date = textFrame(id3tag, "TYER")
	}

	return TagMap{
		Title:       id3tag.Title(),
		Artist:      artist,
		Album:       id3tag.Album(),
		Date:        date,
		TrackNumber: textFrame(id3tag, "TRCK"),
		DiscNumber:  textFrame(id3tag, "TPOS"),
		Genre:       id3tag.Genre(),
		ISRC:        textFrame(id3tag, "TSRC"),
	}, nil
}

// readWithTaglib reads tags through TagLib. Primary reader for WAV,
// fallback for FLAC.
func readWithTaglib(path string) (TagMap, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return TagMap{}, err
	}
	get := func(key string) string {
		if values := raw[key]; len(values) > 0 {
			return values[0]
		}
		return ""
	}

	artist := get(taglib.Artist)
	if artist == "" {
		artist = get(taglib.AlbumArtist)
	}

	return TagMap{
		Title:       get(taglib.Title),
		Artist:      artist,
		Album:       get(taglib.Album),
		Date:        get(taglib.Date),
		TrackNumber: get(taglib.TrackNumber),
		DiscNumber:  get(taglib.DiscNumber),
		Genre:       get(taglib.Genre),
		ISRC:        get(taglib.ISRC),
	}, nil
}

// textFrame reads a text frame value from an ID3v2 tag.
func textFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

// rawString pulls a string value out of the raw metadata map, trying
// each key in order. Vorbis keys arrive lowercased, ID3 frame IDs do not.
func rawString(m tag.Metadata, keys ...string) string {
	raw := m.Raw()
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func yearString(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func itoaNonZero(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
