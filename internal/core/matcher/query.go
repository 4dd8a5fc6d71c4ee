package matcher

import "strings"

// QueryKind selects which catalog index a query step runs against.
type QueryKind int

const (
	QueryTracks QueryKind = iota
	QueryAlbums
)

func (k QueryKind) String() string {
	if k == QueryAlbums {
		return "album"
	}
	return "track"
}

// QueryStep is one catalog query of a search plan.
type QueryStep struct {
	Kind  QueryKind
	Query string
}

// SearchPlan is the ordered list of queries tried for one file. Steps
// go from most to least specific and never repeat a query string.
type SearchPlan struct {
	Steps []QueryStep
}

// MatchInput carries the normalized identity of a local file.
type MatchInput struct {
	Artist NormalizedText
	Title  NormalizedText
	Album  NormalizedText
}

// NewMatchInput normalizes raw tag values into a MatchInput.
func NewMatchInput(artist, title, album string) MatchInput {
	return MatchInput{
		Artist: NormalizeArtist(artist),
		Title:  Normalize(title),
		Album:  Normalize(album),
	}
}

// BuildPlan derives the query cascade for an input. Track queries are
// only planned when the input has title tokens; with nothing but an
// album to go on, only the album steps remain. Duplicate query strings
// collapse into the earliest step.
func BuildPlan(input MatchInput) SearchPlan {
	artist, title, album := input.Artist.Text, input.Title.Text, input.Album.Text
	hasTitle := !input.Title.IsEmpty()

	var plan SearchPlan
	add := func(kind QueryKind, query string) {
		if query == "" {
			return
		}
		for _, s := range plan.Steps {
			if s.Query == query {
				return
			}
		}
		plan.Steps = append(plan.Steps, QueryStep{Kind: kind, Query: query})
	}

	if hasTitle {
		add(QueryTracks, fieldedQuery(artist, title, album))
		add(QueryTracks, fieldedQuery(artist, title, ""))
	}
	add(QueryAlbums, fieldedQuery(artist, "", album))
	if hasTitle {
		add(QueryTracks, fieldedQuery("", title, ""))
	}
	add(QueryAlbums, fieldedQuery("", "", album))
	if hasTitle {
		add(QueryTracks, plainQuery(artist, title, album))
	}
	return plan
}

// fieldedQuery assembles a field-qualified query from the non-empty
// parts, track first, then artist, then album.
func fieldedQuery(artist, title, album string) string {
	var parts []string
	if title != "" {
		parts = append(parts, "track:"+quoteValue(title))
	}
	if artist != "" {
		parts = append(parts, "artist:"+quoteValue(artist))
	}
	if album != "" {
		parts = append(parts, "album:"+quoteValue(album))
	}
	return strings.Join(parts, " ")
}

// plainQuery concatenates the non-empty parts without field qualifiers,
// the catch-all last step of a plan.
func plainQuery(artist, title, album string) string {
	var parts []string
	for _, p := range []string{artist, title, album} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// quoteValue wraps a value in double quotes for a field qualifier.
// Embedded quotes would terminate the field early, so they become
// spaces first.
func quoteValue(s string) string {
	s = strings.ReplaceAll(s, `"`, " ")
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	return `"` + s + `"`
}
