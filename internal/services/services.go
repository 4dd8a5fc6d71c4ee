package services

import (
	"fmt"

	"spotitag/internal/api/spotify"
	"spotitag/internal/config"
	"spotitag/internal/core/scanner"
	"spotitag/internal/core/updater"
	"spotitag/internal/interfaces"
	"spotitag/internal/shared"
	"spotitag/internal/tags"
	"spotitag/internal/trash"
)

// ServiceContainer holds all application services
type ServiceContainer struct {
	Catalog          interfaces.CatalogService
	Tags             interfaces.TagService
	Disposal         interfaces.DisposalService
	Logger           interfaces.LoggerService
	WarningCollector interfaces.WarningCollectorService
	Scanner          *scanner.Scanner
	Updater          *updater.Updater
}

// NewServiceContainer creates a new service container with all services initialized
func NewServiceContainer(cfg *config.Config) *ServiceContainer {
	// Create logger first as other services may need it
	logger := NewConsoleLogger()

	// Create warning collector
	warningCollector := shared.NewWarningCollector(true)

	// Create catalog client
	catalog := spotify.NewClientWithConfig(spotify.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Market:       cfg.Market,
		Timeout:      cfg.RequestTimeout(),
		PageLimit:    config.CatalogPageLimit,
		Debug:        shared.IsDebugMode(),
	})

	// Create tag service
	tagStore := NewTagStore()

	// Create disposal service
	disposal := trash.New()

	// Create scanner with the timestamp source the music directory supports
	fileScanner := scanner.New(scanner.DetectTimestampProvider(cfg.MusicPath))

	// Create the tagging pipeline
	updaterService := updater.New(cfg, catalog, tagStore, disposal, fileScanner, logger, warningCollector)

	return &ServiceContainer{
		Catalog:          catalog,
		Tags:             tagStore,
		Disposal:         disposal,
		Logger:           logger,
		WarningCollector: warningCollector,
		Scanner:          fileScanner,
		Updater:          updaterService,
	}
}

// TagStore implementation backed by the tags package
type TagStore struct{}

func NewTagStore() *TagStore {
	return &TagStore{}
}

func (ts *TagStore) Read(path string) (tags.TagMap, error) {
	return tags.Read(path)
}

func (ts *TagStore) Write(path string, t tags.TagMap, opts tags.WriteOptions) error {
	return tags.Write(path, t, opts)
}

// ConsoleLogger implementation
type ConsoleLogger struct {
	debugMode bool
}

func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{debugMode: false}
}

func (cl *ConsoleLogger) Info(message string, args ...interface{}) {
	shared.ColorInfo.Printf(message+"\n", args...)
}

func (cl *ConsoleLogger) Warning(message string, args ...interface{}) {
	shared.ColorWarning.Printf("⚠️ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Error(message string, args ...interface{}) {
	shared.ColorError.Printf("❌ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Debug(message string, args ...interface{}) {
	if !cl.debugMode {
		return
	}
	fmt.Printf("🐛 DEBUG: "+message+"\n", args...)
}

func (cl *ConsoleLogger) Success(message string, args ...interface{}) {
	shared.ColorSuccess.Printf("✅ "+message+"\n", args...)
}

func (cl *ConsoleLogger) SetDebugMode(enabled bool) {
	cl.debugMode = enabled
}
