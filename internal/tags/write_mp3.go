package tags

import (
	"fmt"

	"github.com/bogem/id3v2/v2"
)

// writeMP3 rewrites the ID3v2 tag of an MP3 file. The tag is upgraded to
// v2.4 with UTF-8 text. Text frames are keyed by frame ID, so setting
// one replaces the previous value while unmanaged frames stay in place.
func writeMP3(path string, t TagMap) error {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open ID3 tag: %w", err)
	}
	defer id3tag.Close()

	id3tag.SetVersion(4)
	id3tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if t.Title != "" {
		id3tag.SetTitle(t.Title)
	}
	if t.Artist != "" {
		id3tag.SetArtist(t.Artist)
	}
	if t.Album != "" {
		id3tag.SetAlbum(t.Album)
	}
	if t.Genre != "" {
		id3tag.SetGenre(t.Genre)
	}
	if t.Date != "" {
		// TDRC is the v2.4 recording date frame.
		id3tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, t.Date)
	}
	if t.TrackNumber != "" {
		id3tag.AddTextFrame(id3tag.CommonID("Track number/Position in set"), id3v2.EncodingUTF8, t.TrackNumber)
	}
	if t.DiscNumber != "" {
		id3tag.AddTextFrame(id3tag.CommonID("Part of a set"), id3v2.EncodingUTF8, t.DiscNumber)
	}
	if t.ISRC != "" {
		id3tag.AddTextFrame("TSRC", id3v2.EncodingUTF8, t.ISRC)
	}

	if len(t.CoverData) > 0 {
		// Picture frames accumulate, so drop the old ones first.
		id3tag.DeleteFrames(id3tag.CommonID("Attached picture"))
		id3tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    t.coverMIME(),
			PictureType: id3v2.PTFrontCover,
			Description: "Front Cover",
			Picture:     t.CoverData,
		})
	}

	if err := id3tag.Save(); err != nil {
		return fmt.Errorf("failed to save ID3 tag: %w", err)
	}
	return nil
}
