package shared

import "strings"

// CandidateKind distinguishes track-shaped from album-shaped catalog records.
type CandidateKind int

const (
	CandidateTrack CandidateKind = iota
	CandidateAlbum
)

func (k CandidateKind) String() string {
	if k == CandidateAlbum {
		return "album"
	}
	return "track"
}

// Candidate is a single record returned by the remote catalog. Track
// candidates carry a title and track/disc numbers; album candidates carry
// only album-level fields. Candidates live for the duration of one match
// attempt and are never persisted.
type Candidate struct {
	Kind        CandidateKind
	ID          string
	Title       string
	Artists     []string
	ArtistIDs   []string
	Album       string
	AlbumID     string
	TrackNumber int
	DiscNumber  int
	ReleaseDate string
	ISRC        string
	ImageURL    string
}

// ArtistLine joins the candidate's artists the way they are written to tags.
func (c Candidate) ArtistLine() string {
	return strings.Join(c.Artists, ", ")
}

// PrimaryArtistID returns the first artist ID, or "" when none is known.
func (c Candidate) PrimaryArtistID() string {
	if len(c.ArtistIDs) == 0 {
		return ""
	}
	return c.ArtistIDs[0]
}

// Describe renders a candidate for verbose search diagnostics.
func (c Candidate) Describe() string {
	var b strings.Builder
	b.WriteString(c.Kind.String())
	b.WriteString(" ")
	if c.Title != "" {
		b.WriteString(c.Title)
	} else {
		b.WriteString(c.Album)
	}
	if len(c.Artists) > 0 {
		b.WriteString(" / ")
		b.WriteString(c.ArtistLine())
	}
	return b.String()
}

// RunStats accumulates per-run counters. Owned by the orchestrator,
// append-only, reported once at the end of the run.
type RunStats struct {
	TotalFound  int
	Processed   int
	Updated     int
	Skipped     int
	Failed      int
	Unsupported int
}
