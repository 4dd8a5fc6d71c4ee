package interfaces

import (
	"context"

	"spotitag/internal/shared"
	"spotitag/internal/tags"
)

// CatalogService defines the interface for the remote music catalog
type CatalogService interface {
	// Authenticate obtains the API token used for the rest of the run
	Authenticate(ctx context.Context) error

	// SearchByISRC looks up a track by its ISRC code
	SearchByISRC(ctx context.Context, isrc string) ([]shared.Candidate, error)

	// SearchTracks runs a track search and returns up to limit candidates
	SearchTracks(ctx context.Context, query string, limit int) ([]shared.Candidate, error)

	// SearchAlbums runs an album search and returns up to limit candidates
	SearchAlbums(ctx context.Context, query string, limit int) ([]shared.Candidate, error)

	// FindArtist resolves an artist name to a catalog artist ID
	FindArtist(ctx context.Context, name string) (string, error)

	// ArtistAlbums lists the albums of an artist
	ArtistAlbums(ctx context.Context, artistID string) ([]shared.Candidate, error)

	// AlbumTracks lists the tracks of an album
	AlbumTracks(ctx context.Context, albumID string) ([]shared.Candidate, error)

	// ArtistGenres returns the genres attached to an artist
	ArtistGenres(ctx context.Context, artistID string) ([]string, error)

	// DownloadImage fetches cover art and returns the bytes and MIME type
	DownloadImage(ctx context.Context, imageURL string) ([]byte, string, error)
}

// TagService defines the interface for tag reading and writing
type TagService interface {
	// Read reads the tag fields of an audio file
	Read(path string) (tags.TagMap, error)

	// Write applies tag fields to an audio file in place
	Write(path string, t tags.TagMap, opts tags.WriteOptions) error
}

// DisposalService defines the interface for reversible file removal
type DisposalService interface {
	// Dispose moves a file to the system trash
	Dispose(path string) error
}

// LoggerService defines the interface for logging operations
type LoggerService interface {
	// Info logs an informational message
	Info(message string, args ...interface{})

	// Warning logs a warning message
	Warning(message string, args ...interface{})

	// Error logs an error message
	Error(message string, args ...interface{})

	// Debug logs a debug message
	Debug(message string, args ...interface{})

	// Success logs a success message
	Success(message string, args ...interface{})

	// SetDebugMode enables or disables debug logging
	SetDebugMode(enabled bool)
}

// WarningCollectorService defines the interface for warning collection
type WarningCollectorService interface {
	// AddWarning adds a warning to the collection
	AddWarning(warningType shared.WarningType, context, message, details string)

	// AddCoverArtDownloadWarning adds a cover art download warning
	AddCoverArtDownloadWarning(context, details string)

	// AddCoverArtEmbedWarning adds a cover art embedding warning
	AddCoverArtEmbedWarning(context, details string)

	// AddGenreLookupWarning adds an artist genre lookup warning
	AddGenreLookupWarning(artist, details string)

	// AddTagReadWarning adds a tag read warning
	AddTagReadWarning(path, details string)

	// AddWavCoverSkippedWarning records cover art skipped for a WAV file
	AddWavCoverSkippedWarning(path string)

	// HasWarnings returns true if there are any warnings
	HasWarnings() bool

	// GetWarningCount returns the total number of warnings
	GetWarningCount() int

	// PrintSummary prints a formatted summary of all warnings
	PrintSummary()
}
