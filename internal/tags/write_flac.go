package tags

import (
	"fmt"
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// writeFLAC rewrites the Vorbis comment block of a FLAC file. Managed
// keys are replaced, every other comment is carried over unchanged.
func writeFLAC(path string, t TagMap) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	// Reuse the existing comment block so unmanaged keys survive.
	var comment *flacvorbis.MetaDataBlockVorbisComment
	commentIdx := -1
	for i, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			parsed, parseErr := flacvorbis.ParseFromMetaDataBlock(*block)
			if parseErr == nil {
				comment = parsed
				commentIdx = i
			}
			break
		}
	}
	if comment == nil {
		comment = flacvorbis.New()
	}

	setVorbisField(comment, flacvorbis.FIELD_TITLE, t.Title)
	setVorbisField(comment, flacvorbis.FIELD_ARTIST, t.Artist)
	setVorbisField(comment, flacvorbis.FIELD_ALBUM, t.Album)
	setVorbisField(comment, flacvorbis.FIELD_DATE, t.Date)
	setVorbisField(comment, flacvorbis.FIELD_TRACKNUMBER, t.TrackNumber)
	setVorbisField(comment, "DISCNUMBER", t.DiscNumber)
	setVorbisField(comment, "GENRE", t.Genre)
	setVorbisField(comment, "ISRC", t.ISRC)

	commentBlock := comment.Marshal()
	if commentIdx >= 0 {
		f.Meta[commentIdx] = &commentBlock
	} else {
		f.Meta = append(f.Meta, &commentBlock)
	}

	if len(t.CoverData) > 0 {
		if err := replaceFLACCover(f, t); err != nil {
			return fmt.Errorf("failed to embed cover art: %w", err)
		}
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save FLAC file: %w", err)
	}
	return nil
}

// setVorbisField replaces all existing values for a key with the given
// value. Empty values leave the existing comments alone.
func setVorbisField(comment *flacvorbis.MetaDataBlockVorbisComment, key, value string) {
	if value == "" {
		return
	}
	prefix := strings.ToUpper(key) + "="
	kept := make([]string, 0, len(comment.Comments))
	for _, c := range comment.Comments {
		if !strings.HasPrefix(strings.ToUpper(c), prefix) {
			kept = append(kept, c)
		}
	}
	comment.Comments = kept
	comment.Add(key, value)
}

// replaceFLACCover drops every existing PICTURE block and appends the
// new front cover.
func replaceFLACCover(f *flac.File, t TagMap) error {
	kept := make([]*flac.MetaDataBlock, 0, len(f.Meta))
	for _, block := range f.Meta {
		if block.Type != flac.Picture {
			kept = append(kept, block)
		}
	}
	f.Meta = kept

	picture, err := flacpicture.NewFromImageData(
		flacpicture.PictureTypeFrontCover,
		"Front Cover",
		t.CoverData,
		t.coverMIME(),
	)
	if err != nil {
		return err
	}
	pictureBlock := picture.Marshal()
	f.Meta = append(f.Meta, &pictureBlock)
	return nil
}
