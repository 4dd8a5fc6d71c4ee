package matcher

import (
	"context"
	"strings"

	"spotitag/internal/config"
	"spotitag/internal/shared"
)

// CandidateSource is the slice of the catalog client the selector
// needs. Search methods page internally and return at most limit
// records; enumeration methods return every page.
type CandidateSource interface {
	SearchByISRC(ctx context.Context, isrc string) ([]shared.Candidate, error)
	SearchTracks(ctx context.Context, query string, limit int) ([]shared.Candidate, error)
	SearchAlbums(ctx context.Context, query string, limit int) ([]shared.Candidate, error)
	FindArtist(ctx context.Context, name string) (string, error)
	ArtistAlbums(ctx context.Context, artistID string) ([]shared.Candidate, error)
	AlbumTracks(ctx context.Context, albumID string) ([]shared.Candidate, error)
}

// MatchReason explains how a decision was reached.
type MatchReason string

const (
	// ReasonISRC: candidate found through an ISRC lookup, accepted
	// without token checks.
	ReasonISRC MatchReason = "isrc"
	// ReasonContainment: candidate passed the token containment checks.
	ReasonContainment MatchReason = "containment"
	// ReasonNoneFound: no query produced any candidate.
	ReasonNoneFound MatchReason = "none-found"
	// ReasonAllRejected: candidates were found but none passed the
	// token checks within the candidate limit.
	ReasonAllRejected MatchReason = "all-rejected"
	// ReasonNoInput: neither title nor album tokens survive
	// normalization, so no query would be meaningful.
	ReasonNoInput MatchReason = "no-searchable-text"
)

// MatchDecision is the outcome of matching one file against the
// catalog. Candidate is only meaningful when Accepted is true.
type MatchDecision struct {
	Accepted  bool
	Candidate shared.Candidate
	Reason    MatchReason
}

// Selector runs the query cascade against a catalog and picks the
// first acceptable candidate. Candidates are evaluated in the order
// the catalog returns them; the first one passing all checks wins.
type Selector struct {
	Source CandidateSource
	// Limit caps how many distinct candidates the cascade evaluates
	// across all steps.
	Limit int
	// Verbose prints per-query and per-candidate diagnostics.
	Verbose bool
}

// Select matches one file. isrc, when non-empty, is tried first and
// accepted unconditionally; a failed ISRC lookup falls through to the
// text cascade. After the cascade, a catalog walk of the artist's
// albums serves as a last resort. Returns an error only on transport
// failures during the cascade or the walk.
func (s *Selector) Select(ctx context.Context, input MatchInput, isrc string) (MatchDecision, error) {
	if isrc != "" {
		s.logf("isrc lookup: %s", isrc)
		candidates, err := s.Source.SearchByISRC(ctx, isrc)
		if err != nil {
			s.logf("isrc lookup failed: %v", err)
		} else if len(candidates) > 0 {
			s.logf("isrc hit: %s", candidates[0].Describe())
			return MatchDecision{Accepted: true, Candidate: candidates[0], Reason: ReasonISRC}, nil
		}
	}

	if input.Title.IsEmpty() && input.Album.IsEmpty() {
		return MatchDecision{Reason: ReasonNoInput}, nil
	}

	limit := s.Limit
	if limit <= 0 {
		limit = config.DefaultSearchCandidateLimit
	}

	s.logf("search input: artist=%q title=%q album=%q", input.Artist.Text, input.Title.Text, input.Album.Text)

	plan := BuildPlan(input)
	seen := make(map[string]struct{})
	considered := 0
	for i, step := range plan.Steps {
		if considered >= limit {
			break
		}
		s.logf("query %d/%d (%s): %s", i+1, len(plan.Steps), step.Kind, step.Query)
		var candidates []shared.Candidate
		var err error
		if step.Kind == QueryAlbums {
			candidates, err = s.Source.SearchAlbums(ctx, step.Query, limit-considered)
		} else {
			candidates, err = s.Source.SearchTracks(ctx, step.Query, limit-considered)
		}
		if err != nil {
			return MatchDecision{}, err
		}
		for _, cand := range candidates {
			key := candidateKey(cand)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			considered++
			if s.evaluate(input, cand) {
				return MatchDecision{Accepted: true, Candidate: cand, Reason: ReasonContainment}, nil
			}
			if considered >= limit {
				break
			}
		}
	}

	decision, explored, err := s.exploreArtist(ctx, input, seen)
	if err != nil {
		return MatchDecision{}, err
	}
	if decision.Accepted {
		return decision, nil
	}

	if considered == 0 && !explored {
		return MatchDecision{Reason: ReasonNoneFound}, nil
	}
	return MatchDecision{Reason: ReasonAllRejected}, nil
}

// exploreArtist walks the artist's discography when every query came
// up empty-handed. It needs both artist and title tokens to stay
// meaningful; album tokens, when present, filter which albums are
// walked. The returned bool reports whether any track was evaluated.
func (s *Selector) exploreArtist(ctx context.Context, input MatchInput, seen map[string]struct{}) (MatchDecision, bool, error) {
	if input.Artist.IsEmpty() || input.Title.IsEmpty() {
		return MatchDecision{}, false, nil
	}
	s.logf("artist walk: %s", input.Artist.Text)
	artistID, err := s.Source.FindArtist(ctx, input.Artist.Text)
	if err != nil {
		return MatchDecision{}, false, err
	}
	if artistID == "" {
		return MatchDecision{}, false, nil
	}
	albums, err := s.Source.ArtistAlbums(ctx, artistID)
	if err != nil {
		return MatchDecision{}, false, err
	}
	explored := false
	for _, album := range albums {
		if !input.Album.IsEmpty() && !containsAll(input.Album.Tokens, Normalize(album.Album).Text) {
			continue
		}
		tracks, err := s.Source.AlbumTracks(ctx, album.ID)
		if err != nil {
			return MatchDecision{}, explored, err
		}
		for _, track := range tracks {
			track.Album = album.Album
			track.AlbumID = album.ID
			key := candidateKey(track)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			explored = true
			if s.evaluate(input, track) {
				return MatchDecision{Accepted: true, Candidate: track, Reason: ReasonContainment}, explored, nil
			}
		}
	}
	return MatchDecision{}, explored, nil
}

// evaluate runs the token containment checks for one candidate:
// every input title token must appear in the candidate title, the
// candidate artists must cover at least one input artist token (or
// all remixer tokens), and when the input has album tokens they must
// all appear in the candidate album.
func (s *Selector) evaluate(input MatchInput, c shared.Candidate) bool {
	titleText := c.Title
	if c.Kind == shared.CandidateAlbum {
		titleText = c.Album
	}
	candTitle := NormalizeBasic(titleText)
	candArtist := NormalizeArtist(c.ArtistLine())
	candAlbum := Normalize(c.Album)

	titleOK := containsAll(input.Title.Tokens, candTitle.Text)
	artistOK := artistMatches(input, candArtist.Text)
	albumOK := input.Album.IsEmpty() || containsAll(input.Album.Tokens, candAlbum.Text)

	if s.Verbose {
		s.logf("candidate [%s]: title=%t artist=%t album=%t", c.Describe(), titleOK, artistOK, albumOK)
	}
	return titleOK && artistOK && albumOK
}

// artistMatches accepts a candidate artist line when no artist tokens
// exist, when any input artist token appears, or when the title named
// remixers and all of them appear. The remixer path lets a remix match
// the remixer's release even though the original artist is absent.
func artistMatches(input MatchInput, candArtistText string) bool {
	if input.Artist.IsEmpty() {
		return true
	}
	if containsAny(input.Artist.Tokens, candArtistText) {
		return true
	}
	remix := input.Title.RemixTokens
	return len(remix) > 0 && containsAll(remix, candArtistText)
}

// candidateKey identifies a candidate for cross-query deduplication.
func candidateKey(c shared.Candidate) string {
	if c.ID != "" {
		return "id:" + c.ID
	}
	return "key:" + strings.ToLower(c.Title+"|"+c.ArtistLine()+"|"+c.Album)
}

// containsAll reports whether every token appears as a word of text.
// Vacuously true for an empty token list.
func containsAll(tokens []string, text string) bool {
	if len(tokens) == 0 {
		return true
	}
	words := wordSet(text)
	for _, t := range tokens {
		if _, ok := words[t]; !ok {
			return false
		}
	}
	return true
}

// containsAny reports whether at least one token appears as a word of
// text. False for an empty token list.
func containsAny(tokens []string, text string) bool {
	words := wordSet(text)
	for _, t := range tokens {
		if _, ok := words[t]; ok {
			return true
		}
	}
	return false
}

func wordSet(text string) map[string]struct{} {
	fields := strings.Fields(text)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func (s *Selector) logf(format string, args ...interface{}) {
	if !s.Verbose {
		return
	}
	shared.ColorInfo.Printf("   "+format+"\n", args...)
}
