package fiches

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	filenamePrefix = "fiche_"
	maxSlugLen     = 50
	defaultSlug    = "fiche"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases title and collapses every run of characters outside
// [a-z0-9] into a single underscore, truncated to 50 bytes.
func Slug(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "_")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	if strings.Trim(slug, "_") == "" {
		return defaultSlug
	}
	return slug
}

// Timestamp renders t as UTC ISO-8601 with milliseconds, made filesystem
// safe: 2026-10-18_09-41-07-123Z.
func Timestamp(t time.Time) string {
	t = t.UTC()
	return t.Format("2006-01-02_15-04-05") + fmt.Sprintf("-%03dZ", t.Nanosecond()/int(time.Millisecond))
}

// Filename builds fiche_<slug>_<timestamp>.<ext>.
func Filename(title string, ext string, now time.Time) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = "txt"
	}
	return filenamePrefix + Slug(title) + "_" + Timestamp(now) + "." + ext
}
