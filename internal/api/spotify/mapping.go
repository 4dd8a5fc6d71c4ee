package spotify

import (
	"github.com/zmb3/spotify/v2"

	"spotitag/internal/shared"
)

// trackCandidate converts a full track, album context included.
func trackCandidate(t spotify.FullTrack) shared.Candidate {
	c := shared.Candidate{
		Kind:        shared.CandidateTrack,
		ID:          string(t.ID),
		Title:       t.Name,
		Album:       t.Album.Name,
		AlbumID:     string(t.Album.ID),
		TrackNumber: int(t.TrackNumber),
		DiscNumber:  int(t.DiscNumber),
		ReleaseDate: t.Album.ReleaseDate,
		ISRC:        t.ExternalIDs["isrc"],
	}
	c.Artists, c.ArtistIDs = artistNames(t.Artists)
	if len(t.Album.Images) > 0 {
		c.ImageURL = t.Album.Images[0].URL
	}
	return c
}

// albumCandidate converts a search or discography album.
func albumCandidate(a spotify.SimpleAlbum) shared.Candidate {
	c := shared.Candidate{
		Kind:        shared.CandidateAlbum,
		ID:          string(a.ID),
		Album:       a.Name,
		AlbumID:     string(a.ID),
		ReleaseDate: a.ReleaseDate,
	}
	c.Artists, c.ArtistIDs = artistNames(a.Artists)
	if len(a.Images) > 0 {
		c.ImageURL = a.Images[0].URL
	}
	return c
}

// simpleTrackCandidate converts an album-listing track. Those carry no
// album object of their own, so the album fields stay empty for the
// caller to fill in.
func simpleTrackCandidate(t spotify.SimpleTrack) shared.Candidate {
	c := shared.Candidate{
		Kind:        shared.CandidateTrack,
		ID:          string(t.ID),
		Title:       t.Name,
		TrackNumber: int(t.TrackNumber),
		DiscNumber:  int(t.DiscNumber),
	}
	c.Artists, c.ArtistIDs = artistNames(t.Artists)
	return c
}

func artistNames(artists []spotify.SimpleArtist) (names, ids []string) {
	for _, a := range artists {
		names = append(names, a.Name)
		ids = append(ids, string(a.ID))
	}
	return names, ids
}
