package tags

import (
	"fmt"

	"go.senan.xyz/taglib"
)

// writeWAV updates WAV tags through TagLib, which maintains both the
// RIFF INFO chunk and the embedded ID3v2 chunk. Tags are merged rather
// than cleared so unmanaged keys survive. Cover embedding is opt-in.
func writeWAV(path string, t TagMap, embedCover bool) error {
	wavTags := map[string][]string{}
	set := func(key, value string) {
		if value != "" {
			wavTags[key] = []string{value}
		}
	}

	set(taglib.Title, t.Title)
	set(taglib.Artist, t.Artist)
	set(taglib.Album, t.Album)
	set(taglib.Date, t.Date)
	set(taglib.TrackNumber, t.TrackNumber)
	set(taglib.DiscNumber, t.DiscNumber)
	set(taglib.Genre, t.Genre)
	set(taglib.ISRC, t.ISRC)

	if err := taglib.WriteTags(path, wavTags, 0); err != nil {
		return fmt.Errorf("failed to write WAV tags: %w", err)
	}

	if embedCover && len(t.CoverData) > 0 {
		if err := taglib.WriteImage(path, t.CoverData); err != nil {
			return fmt.Errorf("failed to embed WAV cover art: %w", err)
		}
	}
	return nil
}
