package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"spotitag/internal/shared"
)

const (
	DefaultProcessTopX          = 50
	DefaultSearchCandidateLimit = 5
	DefaultRequestTimeout       = 12

	// CatalogPageLimit is the largest page size the catalog search accepts.
	CatalogPageLimit = 50
)

// FilenameParseMode selects how a "A - B" filename stem is interpreted.
type FilenameParseMode int

const (
	ParseArtistTitle FilenameParseMode = 0
	ParseTitleArtist FilenameParseMode = 1
)

func (m FilenameParseMode) String() string {
	if m == ParseTitleArtist {
		return "Title-Artist"
	}
	return "Artist-Title"
}

// Configuration structure. One explicit record passed into every component;
// nothing reads configuration ambiently.
type Config struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	MusicPath    string `json:"music_path"`

	// Older config files used these keys for the music directory. Honored on
	// load, cleared before save.
	SourceDir string `json:"source_dir,omitempty"`
	MusicDir  string `json:"music_dir,omitempty"`

	Recursive                   bool              `json:"recursive"`
	ProcessTopX                 int               `json:"process_top_x"`
	OverwriteTitleArtistOrAlbum bool              `json:"overwrite_title_artist_or_album"`
	UpdateOnlyGenre             bool              `json:"update_only_genre"`
	PrintSearchInfo             bool              `json:"print_search_info"`
	SearchCandidateLimit        int               `json:"search_candidate_limit"`
	Market                      string            `json:"market,omitempty"`
	FilenameParseMode           FilenameParseMode `json:"filename_parse_mode"`
	RequestTimeoutSeconds       int               `json:"request_timeout_seconds"`
	WavEmbedCover               bool              `json:"wav_embed_cover"`
	DisableUpdateCheck          bool              `json:"disable_update_check"`
	UpdateRepo                  string            `json:"update_repo,omitempty"`
}

// GetDefaultConfig returns a configuration with every tunable at its default.
// Credentials and the music path have no defaults and must be supplied.
func GetDefaultConfig() *Config {
	return &Config{
		Recursive:                   false,
		ProcessTopX:                 DefaultProcessTopX,
		OverwriteTitleArtistOrAlbum: true,
		UpdateOnlyGenre:             false,
		PrintSearchInfo:             false,
		SearchCandidateLimit:        DefaultSearchCandidateLimit,
		FilenameParseMode:           ParseArtistTitle,
		RequestTimeoutSeconds:       DefaultRequestTimeout,
		WavEmbedCover:               false,
		DisableUpdateCheck:          false,
	}
}

// RequestTimeout returns the configured HTTP timeout as a duration.
func (cfg *Config) RequestTimeout() time.Duration {
	seconds := cfg.RequestTimeoutSeconds
	if seconds <= 0 {
		seconds = DefaultRequestTimeout
	}
	return time.Duration(seconds) * time.Second
}

// Normalize resolves legacy music-path aliases and clears them so a saved
// config only carries music_path.
func (cfg *Config) Normalize() {
	if cfg.MusicPath == "" && cfg.SourceDir != "" {
		cfg.MusicPath = cfg.SourceDir
	}
	if cfg.MusicPath == "" && cfg.MusicDir != "" {
		cfg.MusicPath = cfg.MusicDir
	}
	cfg.SourceDir = ""
	cfg.MusicDir = ""
}

// Validate checks the record for startup-fatal problems.
func (cfg *Config) Validate() error {
	if cfg.ClientID == "" {
		return &shared.ConfigError{Field: "client_id", Reason: "missing"}
	}
	if cfg.ClientSecret == "" {
		return &shared.ConfigError{Field: "client_secret", Reason: "missing"}
	}
	if cfg.MusicPath == "" {
		return &shared.ConfigError{Field: "music_path", Reason: "missing"}
	}
	info, err := os.Stat(cfg.MusicPath)
	if err != nil {
		return &shared.ConfigError{Field: "music_path", Reason: fmt.Sprintf("not accessible: %v", err)}
	}
	if !info.IsDir() {
		return &shared.ConfigError{Field: "music_path", Reason: "not a directory"}
	}
	if cfg.ProcessTopX < 0 {
		return &shared.ConfigError{Field: "process_top_x", Reason: "must be >= 0"}
	}
	if cfg.SearchCandidateLimit < 1 {
		return &shared.ConfigError{Field: "search_candidate_limit", Reason: "must be >= 1"}
	}
	if cfg.FilenameParseMode != ParseArtistTitle && cfg.FilenameParseMode != ParseTitleArtist {
		return &shared.ConfigError{Field: "filename_parse_mode", Reason: "must be 0 (Artist-Title) or 1 (Title-Artist)"}
	}
	return nil
}

// LoadConfig loads configuration from a JSON file into config. Keys absent
// from the file keep whatever config already holds, so loading into
// GetDefaultConfig() applies defaults.
func LoadConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Normalize()
	return nil
}

// SaveConfig saves configuration to a JSON file
func SaveConfig(filePath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
