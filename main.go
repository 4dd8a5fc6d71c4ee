package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"spotitag/internal/config"
	"spotitag/internal/core/selfupdate"
	"spotitag/internal/services"
	"spotitag/internal/shared"
)

const toolVersion = "1.0.0"

var (
	configFile      string
	musicPath       string
	recursive       bool
	processTopX     int
	overwriteTAA    bool
	updateOnlyGenre bool
	market          string
	verbose         bool
	debug           bool
)

var rootCmd = &cobra.Command{
	Use:     "spotitag",
	Version: toolVersion,
	Short:   "Updates local audio file tags from the Spotify catalog.",
	Long: fmt.Sprintf(`Spotitag (v%s)

Matches the FLAC, MP3, and WAV files of a music directory against the
Spotify catalog and rewrites their tags with the catalog's metadata:
title, artist, album, track and disc numbers, release date, artist
genres, and embedded cover art.

Files are never modified in place. Every rewrite happens on a working
copy, the original goes to the system trash, and only then does the
copy take the original's name, so a crash at any point leaves either
the untouched original or a recoverable one.`, toolVersion),
	Run: func(cmd *cobra.Command, args []string) {
		runTagging(cmd)
	},
}

func runTagging(cmd *cobra.Command) {
	shared.InitializeColors()
	if debug {
		os.Setenv("DEBUG", "1")
	}

	cfg := initConfig(cmd)
	if err := cfg.Validate(); err != nil {
		shared.ColorError.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	selfupdate.CheckForUpdates(cfg, toolVersion)

	container := services.NewServiceContainer(cfg)
	container.Logger.SetDebugMode(debug || shared.IsDebugMode())

	ctx := context.Background()
	if err := container.Catalog.Authenticate(ctx); err != nil {
		container.Logger.Error("Spotify authentication failed: %v", err)
		os.Exit(1)
	}

	if _, err := container.Updater.Run(ctx); err != nil {
		container.Logger.Error("%v", err)
		os.Exit(1)
	}
}

// initConfig loads config.json, walking through first-run setup when the
// file is missing and the session is interactive. Flags override the
// file only when explicitly set.
func initConfig(cmd *cobra.Command) *config.Config {
	cfg := config.GetDefaultConfig()

	if !shared.FileExists(configFile) {
		if shared.IsTTY() {
			firstRunSetup(cfg)
			if err := config.SaveConfig(configFile, cfg); err != nil {
				shared.ColorError.Printf("❌ Failed to save initial config: %v\n", err)
			} else {
				shared.ColorSuccess.Println("✅ Configuration saved to", configFile)
			}
		}
	} else {
		if err := config.LoadConfig(configFile, cfg); err != nil {
			shared.ColorError.Printf("❌ Failed to load config from %s: %v\n", configFile, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("music-path") {
		cfg.MusicPath = musicPath
	}
	if flags.Changed("recursive") {
		cfg.Recursive = recursive
	}
	if flags.Changed("process-top-x") {
		cfg.ProcessTopX = processTopX
	}
	if flags.Changed("overwrite-taa") {
		cfg.OverwriteTitleArtistOrAlbum = overwriteTAA
	}
	if flags.Changed("update-only-genre") {
		cfg.UpdateOnlyGenre = updateOnlyGenre
	}
	if flags.Changed("market") {
		cfg.Market = market
	}
	if flags.Changed("verbose") {
		cfg.PrintSearchInfo = verbose
	}

	return cfg
}

func firstRunSetup(cfg *config.Config) {
	shared.ColorInfo.Println("✨ Welcome to Spotitag! Let's set up your configuration.")

	cfg.ClientID = shared.GetUserInput("Enter Spotify client ID", "")
	cfg.ClientSecret = shared.GetUserInput("Enter Spotify client secret", "")

	defaultMusic := xdg.UserDirs.Music
	cfg.MusicPath = shared.GetUserInput("Enter music directory", defaultMusic)

	topX := shared.GetUserInput("Enter how many files to process per run, 0 for all", strconv.Itoa(cfg.ProcessTopX))
	if n, err := strconv.Atoi(topX); err == nil && n >= 0 {
		cfg.ProcessTopX = n
	} else {
		shared.ColorWarning.Printf("⚠️ Invalid count '%s', using default %d.\n", topX, cfg.ProcessTopX)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.json", "Path to the config file")
	rootCmd.Flags().StringVar(&musicPath, "music-path", "", "Directory holding the audio files")
	rootCmd.Flags().BoolVar(&recursive, "recursive", false, "Scan subdirectories too")
	rootCmd.Flags().IntVar(&processTopX, "process-top-x", config.DefaultProcessTopX, "Process only the N earliest files, 0 for all")
	rootCmd.Flags().BoolVar(&overwriteTAA, "overwrite-taa", true, "Overwrite existing title, artist, and album tags")
	rootCmd.Flags().BoolVar(&updateOnlyGenre, "update-only-genre", false, "Only update the genre tag of matched files")
	rootCmd.Flags().StringVar(&market, "market", "", "Catalog market region code, e.g. US")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Print every search query and candidate decision")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
