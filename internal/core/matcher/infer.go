package matcher

import (
	"regexp"
	"strings"

	"spotitag/internal/config"
)

// filenameSeparator matches " - " with an ASCII hyphen, en dash, or em
// dash. The surrounding spaces keep hyphenated names like "Jay-Z" from
// being treated as separators.
var filenameSeparator = regexp.MustCompile(`\s[-\x{2013}\x{2014}]\s`)

// InferFromFilename guesses artist and title from a filename stem.
// Inference only happens when the stem contains exactly one separator,
// split according to mode, or no separator at all, in which case the
// whole stem becomes the title. Two or more separators are ambiguous
// and yield ok=false. Either returned side may be empty.
func InferFromFilename(stem string, mode config.FilenameParseMode) (artist, title string, ok bool) {
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return "", "", false
	}
	seps := filenameSeparator.FindAllStringIndex(stem, -1)
	switch len(seps) {
	case 0:
		return "", stem, true
	case 1:
		left := strings.TrimSpace(stem[:seps[0][0]])
		right := strings.TrimSpace(stem[seps[0][1]:])
		if mode == config.ParseTitleArtist {
			return right, left, true
		}
		return left, right, true
	default:
		return "", "", false
	}
}
