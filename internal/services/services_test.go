package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"spotitag/internal/api/spotify"
	"spotitag/internal/config"
	"spotitag/internal/shared"
	"spotitag/internal/tags"
)

func testContainerConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.GetDefaultConfig()
	cfg.ClientID = "test-client-id"
	cfg.ClientSecret = "test-client-secret"
	cfg.MusicPath = t.TempDir()
	return cfg
}

func TestNewServiceContainer(t *testing.T) {
	cfg := testContainerConfig(t)

	// Test service container creation
	container := NewServiceContainer(cfg)

	// Verify all services are initialized
	if container.Catalog == nil {
		t.Error("Catalog service not initialized")
	}
	if container.Tags == nil {
		t.Error("Tags service not initialized")
	}
	if container.Disposal == nil {
		t.Error("Disposal service not initialized")
	}
	if container.Logger == nil {
		t.Error("Logger service not initialized")
	}
	if container.WarningCollector == nil {
		t.Error("WarningCollector service not initialized")
	}
	if container.Scanner == nil {
		t.Error("Scanner not initialized")
	}
	if container.Updater == nil {
		t.Error("Updater not initialized")
	}
}

func TestNewServiceContainerCatalogConfig(t *testing.T) {
	cfg := testContainerConfig(t)
	cfg.Market = "DE"
	cfg.RequestTimeoutSeconds = 7

	container := NewServiceContainer(cfg)

	client, ok := container.Catalog.(*spotify.Client)
	if !ok {
		t.Fatalf("Catalog is %T, want *spotify.Client", container.Catalog)
	}
	got := client.GetConfig()
	if got.ClientID != "test-client-id" || got.Market != "DE" {
		t.Errorf("catalog config = %+v, credentials or market not carried", got)
	}
	if got.Timeout != 7*time.Second {
		t.Errorf("catalog timeout = %v, want 7s", got.Timeout)
	}
	if got.PageLimit != config.CatalogPageLimit {
		t.Errorf("catalog page limit = %d, want %d", got.PageLimit, config.CatalogPageLimit)
	}
}

func TestTagStore(t *testing.T) {
	store := NewTagStore()
	dir := t.TempDir()

	// Unsupported extensions surface the sentinel
	textFile := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(textFile, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Read(textFile); !errors.Is(err, shared.ErrUnsupportedFormat) {
		t.Errorf("Read error = %v, want ErrUnsupportedFormat", err)
	}
	if err := store.Write(textFile, tags.TagMap{Title: "x"}, tags.WriteOptions{}); !errors.Is(err, shared.ErrUnsupportedFormat) {
		t.Errorf("Write error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestConsoleLogger(t *testing.T) {
	logger := NewConsoleLogger()

	// Test debug mode
	logger.SetDebugMode(true)
	// These won't fail but will test the interface
	logger.Info("Test info message")
	logger.Warning("Test warning message")
	logger.Error("Test error message")
	logger.Debug("Test debug message")
	logger.Success("Test success message")
}

func TestWarningCollector(t *testing.T) {
	wc := shared.NewWarningCollector(true)

	// Test initial state
	if wc.HasWarnings() {
		t.Error("New warning collector should have no warnings")
	}

	// Test adding warnings
	wc.AddGenreLookupWarning("Artist", "Test details")
	wc.AddCoverArtDownloadWarning("song.flac", "Test details")

	if !wc.HasWarnings() {
		t.Error("Warning collector should have warnings after adding")
	}

	count := wc.GetWarningCount()
	if count != 2 {
		t.Errorf("Expected 2 warnings, got %d", count)
	}
}
