package utils

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapsePattern = regexp.MustCompile(`[\s_-]+`)
	slugTrimPattern     = regexp.MustCompile(`^-+|-+$`)
)

// GenerateSlug builds a URL-safe slug from a title and appends a random
// numeric suffix in [0, 1000) to disambiguate similar titles. Uniqueness is
// still enforced by the slug column's unique index.
func GenerateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugCollapsePattern.ReplaceAllString(slug, "-")
	slug = slugTrimPattern.ReplaceAllString(slug, "")

	return fmt.Sprintf("%s-%d", slug, rand.Intn(1000))
}
