package parse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const maxSlugLen = 50

var (
	// Unicode letters and digits, whitespace, hyphens and the Persian
	// block survive; everything else (emoji, punctuation) is dropped.
	// \p{L}\p{N} instead of \w so Latin names with diacritics keep
	// their letters.
	slugStripRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s\x{0600}-\x{06FF}-]`)
	slugCollapseRe = regexp.MustCompile(`[-\s]+`)
)

// Slugify derives a URL-safe identifier from a product name. The
// result is deterministic for a given name, at most 50 runes, and has
// no leading or trailing hyphens. Names that reduce to nothing get a
// synthetic timestamp slug so the output is never empty.
func Slugify(name string) string {
	if name == "" {
		return timestampSlug()
	}

	slug := strings.ToLower(name)
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	slug = truncateRunes(slug, maxSlugLen)
	slug = strings.Trim(slug, "-")

	if slug == "" {
		return timestampSlug()
	}
	return slug
}

func timestampSlug() string {
	return fmt.Sprintf("product-%d", time.Now().Unix())
}
