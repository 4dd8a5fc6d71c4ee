package updater

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"spotitag/internal/config"
	"spotitag/internal/core/matcher"
	"spotitag/internal/core/scanner"
	"spotitag/internal/interfaces"
	"spotitag/internal/shared"
	"spotitag/internal/tags"
)

// Outcome classifies what happened to one file.
type Outcome int

const (
	OutcomeUpdated Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Updater holds the collaborators of the tagging pipeline.
type Updater struct {
	config   *config.Config
	catalog  interfaces.CatalogService
	tags     interfaces.TagService
	logger   interfaces.LoggerService
	warnings interfaces.WarningCollectorService
	scanner  *scanner.Scanner
	selector *matcher.Selector
	replacer *Replacer

	// barActive suppresses per-file info lines while a progress bar
	// owns the terminal.
	barActive bool
}

// New creates an Updater from its collaborators.
func New(cfg *config.Config, catalog interfaces.CatalogService, tagService interfaces.TagService, disposal interfaces.DisposalService, sc *scanner.Scanner, logger interfaces.LoggerService, warnings interfaces.WarningCollectorService) *Updater {
	return &Updater{
		config:   cfg,
		catalog:  catalog,
		tags:     tagService,
		logger:   logger,
		warnings: warnings,
		scanner:  sc,
		selector: &matcher.Selector{
			Source:  catalog,
			Limit:   cfg.SearchCandidateLimit,
			Verbose: cfg.PrintSearchInfo,
		},
		replacer: NewReplacer(disposal),
	}
}

// ProcessFile runs the pipeline for a single file: read tags, fill
// missing artist and title from the filename, match against the
// catalog, assemble the new tag set and swap it in. The returned error
// is non-nil for OutcomeFailed, and carries ErrUnsupportedFormat for
// files the tag layer cannot handle; plain skips return a nil error.
func (u *Updater) ProcessFile(ctx context.Context, file scanner.AudioFile) (Outcome, error) {
	base := filepath.Base(file.Path)

	existing, err := u.tags.Read(file.Path)
	if err != nil {
		if errors.Is(err, shared.ErrUnsupportedFormat) {
			return OutcomeSkipped, err
		}
		// A file with a mangled tag block can still be matched through
		// its filename and rewritten with a fresh tag set.
		u.warnings.AddTagReadWarning(file.Path, err.Error())
		existing = tags.TagMap{}
	}

	artist, title := existing.Artist, existing.Title
	if artist == "" || title == "" {
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if infArtist, infTitle, ok := matcher.InferFromFilename(stem, u.config.FilenameParseMode); ok {
			if artist == "" {
				artist = infArtist
			}
			if title == "" {
				title = infTitle
			}
		}
	}
	if artist == "" && title == "" {
		u.info("Skipping %s: insufficient metadata", base)
		return OutcomeSkipped, nil
	}

	input := matcher.NewMatchInput(artist, title, existing.Album)
	decision, err := u.selector.Select(ctx, input, existing.ISRC)
	if err != nil {
		return OutcomeFailed, err
	}
	if !decision.Accepted {
		u.info("No match found for %s", base)
		return OutcomeSkipped, nil
	}
	candidate := decision.Candidate

	genres := u.lookupGenres(ctx, candidate)
	cover := u.downloadCover(ctx, file, candidate)
	newTags := Assemble(candidate, genres, cover, existing, u.config)

	err = u.replacer.Apply(file.Path, func(tmp string) error {
		return u.tags.Write(tmp, newTags, tags.WriteOptions{WavEmbedCover: u.config.WavEmbedCover})
	})
	if err != nil {
		return OutcomeFailed, err
	}

	u.success("Updated %s → %s - %s", base, newTags.Artist, newTags.Title)
	return OutcomeUpdated, nil
}

// lookupGenres fetches the genres of the candidate's primary artist.
// A failed lookup is recorded as a warning and the match proceeds
// without genre.
func (u *Updater) lookupGenres(ctx context.Context, c shared.Candidate) []string {
	artistID := c.PrimaryArtistID()
	if artistID == "" {
		return nil
	}
	genres, err := u.catalog.ArtistGenres(ctx, artistID)
	if err != nil {
		u.warnings.AddGenreLookupWarning(c.ArtistLine(), err.Error())
		return nil
	}
	return genres
}

// downloadCover fetches the candidate's cover image. In genre-only
// mode no cover is needed; for WAV files the download is skipped
// unless embedding is enabled. A failed download is a warning and the
// tags are written without a picture.
func (u *Updater) downloadCover(ctx context.Context, file scanner.AudioFile, c shared.Candidate) CoverImage {
	if u.config.UpdateOnlyGenre || c.ImageURL == "" {
		return CoverImage{}
	}
	if file.Format == tags.FormatWAV && !u.config.WavEmbedCover {
		u.warnings.AddWavCoverSkippedWarning(filepath.Base(file.Path))
		return CoverImage{}
	}
	data, mime, err := u.catalog.DownloadImage(ctx, c.ImageURL)
	if err != nil {
		u.warnings.AddCoverArtDownloadWarning(filepath.Base(file.Path), err.Error())
		return CoverImage{}
	}
	return CoverImage{Data: data, MIME: mime}
}

func (u *Updater) info(format string, args ...interface{}) {
	if u.barActive {
		return
	}
	u.logger.Info(format, args...)
}

func (u *Updater) success(format string, args ...interface{}) {
	if u.barActive {
		return
	}
	u.logger.Success(format, args...)
}
