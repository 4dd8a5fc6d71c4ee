// Package matcher turns local tag text into catalog search plans and
// decides whether catalog candidates actually correspond to a local file.
package matcher

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenLen excludes very short tokens from containment checks, they
// produce too many false positives ("a", "i", single initials).
const minTokenLen = 2

var (
	parenGroup   = regexp.MustCompile(`\(([^)]*)\)`)
	bracketGroup = regexp.MustCompile(`\[([^\]]*)\]`)
	featWord     = regexp.MustCompile(`(?i)\b(feat\.?|ft\.?)\b`)
	remixWord    = regexp.MustCompile(`(?i)\bremix\b`)
	liveWord     = regexp.MustCompile(`(?i)\blive\b`)
	punctuation  = regexp.MustCompile(`[^0-9a-z\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

var unaccent = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// NormalizedText is the comparable form of a tag string. Text is the
// full normalized string, Tokens the deduplicated containment tokens,
// RemixTokens the tokens recovered from remix annotations before they
// were stripped. Values are immutable once built.
type NormalizedText struct {
	Text        string
	Tokens      []string
	RemixTokens []string
}

// IsEmpty reports whether normalization left no usable tokens.
func (n NormalizedText) IsEmpty() bool {
	return len(n.Tokens) == 0
}

// Normalize canonicalizes a title or album string. Parenthesized or
// bracketed annotations naming feat./remix/live content are stripped
// from the comparable text; tokens of remix annotations are kept aside
// so a remixer can still satisfy the artist check.
func Normalize(text string) NormalizedText {
	remixTokens := extractRemixTokens(text)
	stripped := stripAnnotations(text)
	normalized := normalizeBasic(stripped)
	return NormalizedText{
		Text:        normalized,
		Tokens:      containmentTokens(normalized),
		RemixTokens: remixTokens,
	}
}

// NormalizeArtist canonicalizes an artist credit. Separator characters
// between multiple artists become spaces and feat. annotations are
// dropped, so "A, B / C (feat. D)" compares as the plain artist words.
func NormalizeArtist(text string) NormalizedText {
	replacer := strings.NewReplacer(",", " ", "\\", " ", "/", " ")
	stripped := stripFeatGroups(replacer.Replace(text))
	normalized := normalizeBasic(stripped)
	return NormalizedText{
		Text:   normalized,
		Tokens: containmentTokens(normalized),
	}
}

// NormalizeBasic canonicalizes without annotation stripping. Used for
// candidate titles, where annotation words are legitimate content.
func NormalizeBasic(text string) NormalizedText {
	normalized := normalizeBasic(text)
	return NormalizedText{
		Text:   normalized,
		Tokens: containmentTokens(normalized),
	}
}

// normalizeBasic lower-cases, strips diacritics, removes punctuation
// except intra-word hyphens, and collapses whitespace.
func normalizeBasic(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = stripDiacritics(s)
	s = strings.NewReplacer("(", " ", ")", " ", "[", " ", "]", " ").Replace(s)
	s = featWord.ReplaceAllString(s, " ")
	s = punctuation.ReplaceAllString(s, " ")
	s = dropDanglingHyphens(s)
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func stripDiacritics(s string) string {
	out, _, err := transform.String(unaccent, s)
	if err != nil {
		return s
	}
	return out
}

// dropDanglingHyphens keeps hyphens only between two alphanumerics.
func dropDanglingHyphens(s string) string {
	b := []byte(s)
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == '-' {
			prevOK := i > 0 && isAlnum(b[i-1])
			nextOK := i+1 < len(b) && isAlnum(b[i+1])
			if !prevOK || !nextOK {
				out = append(out, ' ')
				continue
			}
		}
		out = append(out, b[i])
	}
	return string(out)
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z'
}

// stripAnnotations removes parenthesized/bracketed groups that denote
// feat., remix, or live annotations. Other groups stay untouched.
func stripAnnotations(s string) string {
	replace := func(match, inner string) string {
		if featWord.MatchString(inner) || remixWord.MatchString(inner) || liveWord.MatchString(inner) {
			return " "
		}
		return match
	}
	s = parenGroup.ReplaceAllStringFunc(s, func(m string) string {
		return replace(m, m[1:len(m)-1])
	})
	s = bracketGroup.ReplaceAllStringFunc(s, func(m string) string {
		return replace(m, m[1:len(m)-1])
	})
	return s
}

// stripFeatGroups removes only feat. parentheticals, the artist-side
// variant of annotation stripping.
func stripFeatGroups(s string) string {
	replace := func(match, inner string) string {
		if featWord.MatchString(inner) {
			return " "
		}
		return match
	}
	s = parenGroup.ReplaceAllStringFunc(s, func(m string) string {
		return replace(m, m[1:len(m)-1])
	})
	s = bracketGroup.ReplaceAllStringFunc(s, func(m string) string {
		return replace(m, m[1:len(m)-1])
	})
	return s
}

// extractRemixTokens collects the normalized tokens of every remix
// annotation, minus the word "remix" itself.
func extractRemixTokens(s string) []string {
	var tokens []string
	collect := func(inner string) {
		name := remixWord.ReplaceAllString(inner, " ")
		tokens = append(tokens, containmentTokens(normalizeBasic(name))...)
	}
	for _, m := range parenGroup.FindAllStringSubmatch(s, -1) {
		if remixWord.MatchString(m[1]) {
			collect(m[1])
		}
	}
	for _, m := range bracketGroup.FindAllStringSubmatch(s, -1) {
		if remixWord.MatchString(m[1]) {
			collect(m[1])
		}
	}
	return dedupeTokens(tokens)
}

// containmentTokens splits normalized text into the deduplicated token
// list used for containment checks, dropping too-short tokens.
func containmentTokens(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return dedupeTokens(tokens)
}

func dedupeTokens(tokens []string) []string {
	if len(tokens) < 2 {
		return tokens
	}
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
