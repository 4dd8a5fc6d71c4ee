package shared

import (
	"sort"
	"strings"
)

// WarningType represents different types of warnings
type WarningType int

const (
	CoverArtDownloadWarning WarningType = iota
	CoverArtEmbedWarning
	GenreLookupWarning
	TagReadWarning
	WavCoverSkippedWarning
)

// Warning represents a single warning with context
type Warning struct {
	Type    WarningType
	Message string
	Context string // File/track context
	Details string // Additional details like error message
}

// WarningCollector collects non-fatal problems during a run so they can be
// summarized at the end instead of scrolling past per file.
type WarningCollector struct {
	warnings []Warning
	enabled  bool
}

// NewWarningCollector creates a new warning collector
func NewWarningCollector(enabled bool) *WarningCollector {
	return &WarningCollector{
		warnings: make([]Warning, 0),
		enabled:  enabled,
	}
}

// AddWarning adds a warning to the collector
func (wc *WarningCollector) AddWarning(warningType WarningType, context, message, details string) {
	if !wc.enabled {
		return
	}

	wc.warnings = append(wc.warnings, Warning{
		Type:    warningType,
		Message: message,
		Context: context,
		Details: details,
	})
}

// AddCoverArtDownloadWarning adds a cover art download warning
func (wc *WarningCollector) AddCoverArtDownloadWarning(context, details string) {
	wc.AddWarning(CoverArtDownloadWarning, context, "Could not download cover art", details)
}

// AddCoverArtEmbedWarning adds a cover art embedding warning
func (wc *WarningCollector) AddCoverArtEmbedWarning(context, details string) {
	wc.AddWarning(CoverArtEmbedWarning, context, "Failed to embed cover art", details)
}

// AddGenreLookupWarning adds an artist genre lookup warning
func (wc *WarningCollector) AddGenreLookupWarning(artist, details string) {
	wc.AddWarning(GenreLookupWarning, artist, "Could not fetch artist genres", details)
}

// AddTagReadWarning adds a tag read warning
func (wc *WarningCollector) AddTagReadWarning(path, details string) {
	wc.AddWarning(TagReadWarning, path, "Could not read existing tags", details)
}

// AddWavCoverSkippedWarning records that cover art was not embedded in a WAV
// file because wav_embed_cover is disabled.
func (wc *WarningCollector) AddWavCoverSkippedWarning(path string) {
	wc.AddWarning(WavCoverSkippedWarning, path, "Cover art skipped for WAV", "")
}

// HasWarnings returns true if there are any warnings
func (wc *WarningCollector) HasWarnings() bool {
	return len(wc.warnings) > 0
}

// GetWarningCount returns the total number of warnings
func (wc *WarningCollector) GetWarningCount() int {
	return len(wc.warnings)
}

// GetWarningsByType returns warnings grouped by type
func (wc *WarningCollector) GetWarningsByType() map[WarningType][]Warning {
	grouped := make(map[WarningType][]Warning)
	for _, warning := range wc.warnings {
		grouped[warning.Type] = append(grouped[warning.Type], warning)
	}
	return grouped
}

// PrintSummary prints a formatted summary of all warnings
func (wc *WarningCollector) PrintSummary() {
	if !wc.HasWarnings() {
		return
	}

	ColorWarning.Printf("\n⚠️  Warning Summary (%d warnings):\n", len(wc.warnings))
	ColorWarning.Println(strings.Repeat("─", 50))

	grouped := wc.GetWarningsByType()

	var types []WarningType
	for warningType := range grouped {
		types = append(types, warningType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, warningType := range types {
		wc.printWarningTypeSection(warningType, grouped[warningType])
	}
}

// printWarningTypeSection prints warnings for a specific type
func (wc *WarningCollector) printWarningTypeSection(warningType WarningType, warnings []Warning) {
	if len(warnings) == 0 {
		return
	}

	ColorWarning.Printf("\n%s (%d):\n", wc.getWarningTypeTitle(warningType), len(warnings))

	// Group repeated contexts to avoid listing the same file many times
	contextCounts := make(map[string]int)
	for _, warning := range warnings {
		contextCounts[warning.Context]++
	}

	var contexts []string
	for context := range contextCounts {
		contexts = append(contexts, context)
	}
	sort.Strings(contexts)

	for _, context := range contexts {
		count := contextCounts[context]
		if count > 1 {
			ColorWarning.Printf("  • %s (×%d)\n", context, count)
		} else {
			ColorWarning.Printf("  • %s\n", context)
		}
	}
}

// getWarningTypeTitle returns a human-readable title for a warning type
func (wc *WarningCollector) getWarningTypeTitle(warningType WarningType) string {
	switch warningType {
	case CoverArtDownloadWarning:
		return "Cover Art Download Failures"
	case CoverArtEmbedWarning:
		return "Cover Art Embedding Failures"
	case GenreLookupWarning:
		return "Artist Genre Lookup Failures"
	case TagReadWarning:
		return "Tag Read Problems"
	case WavCoverSkippedWarning:
		return "WAV Cover Art Skipped"
	default:
		return "Other Warnings"
	}
}
