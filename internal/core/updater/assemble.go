// Package updater drives the per-file pipeline: read the existing
// tags, match the file against the catalog, assemble the new tag set,
// and swap it into place without ever risking the original audio.
package updater

import (
	"strconv"
	"strings"

	"spotitag/internal/config"
	"spotitag/internal/shared"
	"spotitag/internal/tags"
)

// CoverImage is downloaded cover art ready for embedding.
type CoverImage struct {
	Data []byte
	MIME string
}

// Assemble merges a matched candidate into the existing tag set under
// the configured overwrite policy. Date, track and disc numbers, genre
// and cover art are taken from the match whenever it provides them;
// title, artist and album replace existing values only when the
// overwrite flag is on, and otherwise fill in only where the file had
// nothing. The file's ISRC is never replaced. In genre-only mode the
// output differs from existing in the genre field alone.
func Assemble(c shared.Candidate, genres []string, cover CoverImage, existing tags.TagMap, cfg *config.Config) tags.TagMap {
	out := existing
	genre := strings.Join(genres, "; ")

	if cfg.UpdateOnlyGenre {
		if genre != "" {
			out.Genre = genre
		}
		return out
	}

	overwrite := cfg.OverwriteTitleArtistOrAlbum
	if c.Kind == shared.CandidateTrack {
		setText(&out.Title, c.Title, overwrite)
		setText(&out.Artist, c.ArtistLine(), overwrite)
		if c.TrackNumber > 0 {
			out.TrackNumber = strconv.Itoa(c.TrackNumber)
		}
		if c.DiscNumber > 0 {
			out.DiscNumber = strconv.Itoa(c.DiscNumber)
		}
	}
	setText(&out.Album, c.Album, overwrite)

	if c.ReleaseDate != "" {
		out.Date = c.ReleaseDate
	}
	if genre != "" {
		out.Genre = genre
	}
	if len(cover.Data) > 0 {
		out.CoverData = cover.Data
		out.CoverMIME = cover.MIME
	}
	return out
}

// setText writes value into one of the protected fields. Empty values
// never clear a field; without overwrite a value only lands where the
// file had none.
func setText(dst *string, value string, overwrite bool) {
	if value == "" {
		return
	}
	if overwrite || *dst == "" {
		*dst = value
	}
}
