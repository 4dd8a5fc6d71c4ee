// Package spotify wraps the Spotify Web API behind the narrow catalog
// surface the matching pipeline needs: text and ISRC searches, artist
// discography enumeration, genre lookup, and cover art download.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"spotitag/internal/shared"
)

// 1. Constants and types

const (
	defaultTimeout   = 12 * time.Second
	defaultRateLimit = 200 * time.Millisecond
	defaultBurst     = 5
	// defaultPageLimit is the largest page size the search and catalog
	// endpoints accept.
	defaultPageLimit = 50
)

// Config holds configuration for the Spotify client.
type Config struct {
	ClientID     string
	ClientSecret string
	// Market restricts searches to a region when non-empty.
	Market    string
	Timeout   time.Duration
	RateLimit time.Duration
	Burst     int
	PageLimit int
	Debug     bool
}

// Client talks to the Spotify Web API with client-credentials
// authentication. Authentication happens once up front; when the token
// expires mid-run, the next failing call re-authenticates once before
// giving up.
type Client struct {
	api         *spotify.Client
	httpClient  *http.Client
	config      Config
	rateLimiter *rate.Limiter
}

// 2. Constructor and configuration

// DefaultConfig returns sensible defaults for the Spotify client.
func DefaultConfig() Config {
	return Config{
		Timeout:   defaultTimeout,
		RateLimit: defaultRateLimit,
		Burst:     defaultBurst,
		PageLimit: defaultPageLimit,
	}
}

// NewClient creates a client for the given application credentials.
func NewClient(clientID, clientSecret, market string) *Client {
	config := DefaultConfig()
	config.ClientID = clientID
	config.ClientSecret = clientSecret
	config.Market = market
	return NewClientWithConfig(config)
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.RateLimit <= 0 {
		config.RateLimit = defaultRateLimit
	}
	if config.Burst <= 0 {
		config.Burst = defaultBurst
	}
	if config.PageLimit <= 0 || config.PageLimit > defaultPageLimit {
		config.PageLimit = defaultPageLimit
	}
	return &Client{
		httpClient:  &http.Client{Timeout: config.Timeout},
		config:      config,
		rateLimiter: rate.NewLimiter(rate.Every(config.RateLimit), config.Burst),
	}
}

// GetConfig returns the current client configuration.
func (c *Client) GetConfig() Config {
	return c.config
}

// Authenticate obtains a fresh client-credentials token and rebuilds
// the API client around it.
func (c *Client) Authenticate(ctx context.Context) error {
	auth := &clientcredentials.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := auth.Token(ctx)
	if err != nil {
		return &shared.AuthError{Err: err}
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	httpClient.Timeout = c.config.Timeout
	c.api = spotify.New(httpClient)
	return nil
}

// 3. Core request helpers (private)

// call rate-limits and runs one API operation, re-authenticating once
// when the token has expired.
func (c *Client) call(ctx context.Context, op func() error) error {
	if c.api == nil {
		if err := c.Authenticate(ctx); err != nil {
			return err
		}
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}
	err := op()
	if err == nil || !isTokenExpired(err) {
		return err
	}

	shared.DebugPrint(c.config.Debug, "token expired, re-authenticating")
	if err := c.Authenticate(ctx); err != nil {
		return err
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}
	if err := op(); err != nil {
		if isTokenExpired(err) {
			return &shared.AuthError{Err: err}
		}
		return err
	}
	return nil
}

// searchOptions assembles the paging options plus the configured
// market.
func (c *Client) searchOptions(limit, offset int) []spotify.RequestOption {
	opts := []spotify.RequestOption{spotify.Limit(limit), spotify.Offset(offset)}
	if c.config.Market != "" {
		opts = append(opts, spotify.Market(c.config.Market))
	}
	return opts
}

func (c *Client) pageSize(remaining int) int {
	if remaining < c.config.PageLimit {
		return remaining
	}
	return c.config.PageLimit
}

// 4. Public API methods (grouped by functionality)

// Search methods

// SearchByISRC looks a track up by its recording code. At most one
// candidate is returned.
func (c *Client) SearchByISRC(ctx context.Context, isrc string) ([]shared.Candidate, error) {
	if isrc == "" {
		return nil, fmt.Errorf("ISRC cannot be empty")
	}

	query := fmt.Sprintf("isrc:%q", isrc)
	var result *spotify.SearchResult
	err := c.call(ctx, func() error {
		var opErr error
		result, opErr = c.api.Search(ctx, query, spotify.SearchTypeTrack, c.searchOptions(1, 0)...)
		return opErr
	})
	if err != nil {
		return nil, wrapSearchError(query, err)
	}

	if result.Tracks == nil || len(result.Tracks.Tracks) == 0 {
		return nil, nil
	}
	return []shared.Candidate{trackCandidate(result.Tracks.Tracks[0])}, nil
}

// SearchTracks runs a track search, paging until limit results were
// fetched or the catalog runs dry. Duplicate IDs across pages collapse.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]shared.Candidate, error) {
	var candidates []shared.Candidate
	seen := make(map[string]struct{})
	offset := 0
	fetched := 0
	for fetched < limit {
		size := c.pageSize(limit - fetched)
		var result *spotify.SearchResult
		err := c.call(ctx, func() error {
			var opErr error
			result, opErr = c.api.Search(ctx, query, spotify.SearchTypeTrack, c.searchOptions(size, offset)...)
			return opErr
		})
		if err != nil {
			return nil, wrapSearchError(query, err)
		}
		if result.Tracks == nil {
			break
		}
		for _, track := range result.Tracks.Tracks {
			id := string(track.ID)
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			candidates = append(candidates, trackCandidate(track))
		}
		fetched += len(result.Tracks.Tracks)
		offset += size
		if len(result.Tracks.Tracks) < size {
			break
		}
	}
	return candidates, nil
}

// SearchAlbums runs an album search with the same paging contract as
// SearchTracks.
func (c *Client) SearchAlbums(ctx context.Context, query string, limit int) ([]shared.Candidate, error) {
	var candidates []shared.Candidate
	seen := make(map[string]struct{})
	offset := 0
	fetched := 0
	for fetched < limit {
		size := c.pageSize(limit - fetched)
		var result *spotify.SearchResult
		err := c.call(ctx, func() error {
			var opErr error
			result, opErr = c.api.Search(ctx, query, spotify.SearchTypeAlbum, c.searchOptions(size, offset)...)
			return opErr
		})
		if err != nil {
			return nil, wrapSearchError(query, err)
		}
		if result.Albums == nil {
			break
		}
		for _, album := range result.Albums.Albums {
			id := string(album.ID)
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			candidates = append(candidates, albumCandidate(album))
		}
		fetched += len(result.Albums.Albums)
		offset += size
		if len(result.Albums.Albums) < size {
			break
		}
	}
	return candidates, nil
}

// FindArtist returns the ID of the best artist match for a name, or ""
// when the catalog knows no such artist.
func (c *Client) FindArtist(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}

	query := fmt.Sprintf("artist:%q", name)
	var result *spotify.SearchResult
	err := c.call(ctx, func() error {
		var opErr error
		result, opErr = c.api.Search(ctx, query, spotify.SearchTypeArtist, c.searchOptions(1, 0)...)
		return opErr
	})
	if err != nil {
		return "", wrapSearchError(query, err)
	}

	if result.Artists == nil || len(result.Artists.Artists) == 0 {
		return "", nil
	}
	return string(result.Artists.Artists[0].ID), nil
}

// Catalog enumeration methods

// ArtistAlbums returns every album of an artist as album candidates.
func (c *Client) ArtistAlbums(ctx context.Context, artistID string) ([]shared.Candidate, error) {
	var candidates []shared.Candidate
	offset := 0
	for {
		var page *spotify.SimpleAlbumPage
		err := c.call(ctx, func() error {
			var opErr error
			page, opErr = c.api.GetArtistAlbums(ctx, spotify.ID(artistID), nil,
				spotify.Limit(c.config.PageLimit), spotify.Offset(offset))
			return opErr
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch albums for artist %s: %w", artistID, err)
		}
		for _, album := range page.Albums {
			candidates = append(candidates, albumCandidate(album))
		}
		if len(page.Albums) < c.config.PageLimit {
			break
		}
		offset += c.config.PageLimit
	}
	return candidates, nil
}

// AlbumTracks returns every track of an album. The returned candidates
// carry no album fields; callers know which album they asked about.
func (c *Client) AlbumTracks(ctx context.Context, albumID string) ([]shared.Candidate, error) {
	var candidates []shared.Candidate
	offset := 0
	for {
		var page *spotify.SimpleTrackPage
		err := c.call(ctx, func() error {
			var opErr error
			page, opErr = c.api.GetAlbumTracks(ctx, spotify.ID(albumID),
				spotify.Limit(c.config.PageLimit), spotify.Offset(offset))
			return opErr
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tracks for album %s: %w", albumID, err)
		}
		for _, track := range page.Tracks {
			candidates = append(candidates, simpleTrackCandidate(track))
		}
		if len(page.Tracks) < c.config.PageLimit {
			break
		}
		offset += c.config.PageLimit
	}
	return candidates, nil
}

// Metadata retrieval methods

// ArtistGenres returns the genre names attached to an artist.
func (c *Client) ArtistGenres(ctx context.Context, artistID string) ([]string, error) {
	if artistID == "" {
		return nil, nil
	}

	var artist *spotify.FullArtist
	err := c.call(ctx, func() error {
		var opErr error
		artist, opErr = c.api.GetArtist(ctx, spotify.ID(artistID))
		return opErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artist %s: %w", artistID, err)
	}
	return artist.Genres, nil
}

// DownloadImage fetches cover art. The returned MIME type comes from
// the response header and may be empty; the tag writers sniff the
// bytes when it is.
func (c *Client) DownloadImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	if imageURL == "" {
		return nil, "", fmt.Errorf("image URL cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return nil, "", &shared.HTTPError{
				StatusCode: http.StatusGatewayTimeout,
				Status:     "Gateway Timeout",
				Message:    err.Error(),
			}
		}
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &shared.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    "cover art download failed",
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// 5. Helper/utility functions

// isTokenExpired reports whether the API rejected the request because
// the access token is no longer valid.
func isTokenExpired(err error) bool {
	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}
	return false
}

func wrapSearchError(query string, err error) error {
	var authErr *shared.AuthError
	if errors.As(err, &authErr) {
		return err
	}
	return &shared.SearchError{Query: query, Err: err}
}
