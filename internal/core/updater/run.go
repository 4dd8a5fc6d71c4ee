package updater

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"

	"spotitag/internal/shared"
)

// Run discovers the configured music directory and processes the
// queue, earliest files first. Per-file failures are logged and
// counted, never fatal; only an unusable music directory aborts.
func (u *Updater) Run(ctx context.Context) (*shared.RunStats, error) {
	files, unsupported, err := u.scanner.Discover(u.config.MusicPath, u.config.Recursive)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", u.config.MusicPath, err)
	}

	stats := &shared.RunStats{
		TotalFound:  len(files),
		Unsupported: unsupported,
	}
	if len(files) == 0 {
		u.logger.Info("No audio files found under %s", u.config.MusicPath)
		return stats, nil
	}

	if unsupported > 0 {
		u.logger.Info("Found %d audio files (%d unsupported files skipped)", len(files), unsupported)
	} else {
		u.logger.Info("Found %d audio files", len(files))
	}

	queue := files
	if u.config.ProcessTopX > 0 && len(queue) > u.config.ProcessTopX {
		queue = queue[:u.config.ProcessTopX]
		u.logger.Info("Processing the %d earliest files", len(queue))
	}

	var bar *pb.ProgressBar
	if shared.IsTTY() && !u.config.PrintSearchInfo {
		bar = pb.StartNew(len(queue))
		u.barActive = true
	}

	for _, file := range queue {
		outcome, err := u.ProcessFile(ctx, file)
		stats.Processed++
		switch outcome {
		case OutcomeUpdated:
			stats.Updated++
		case OutcomeSkipped:
			stats.Skipped++
		case OutcomeFailed:
			stats.Failed++
			u.logger.Error("Failed to process %s: %v", filepath.Base(file.Path), err)
		}
		if bar != nil {
			bar.Increment()
		}
	}

	if bar != nil {
		bar.Finish()
		u.barActive = false
	}

	u.logger.Info("Completed. Updated: %d, Skipped: %d, Failed: %d, Total found: %d",
		stats.Updated, stats.Skipped, stats.Failed, stats.TotalFound)
	u.warnings.PrintSummary()
	return stats, nil
}
