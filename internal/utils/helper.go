package utils

import (
	"regexp"
	"strings"
)

var (
	nonAlnum  = regexp.MustCompile(`[^a-z0-9]+`)
	multiDash = regexp.MustCompile(`-{2,}`)
)

// SlugifyDatabaseName turns a database name into the directory/file slug used
// by the document store and export filenames. Empty or fully symbolic names
// fall back to "database" so the caller always gets a usable slug.
func SlugifyDatabaseName(database string) string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(database)), "-")
	slug = strings.Trim(multiDash.ReplaceAllString(slug, "-"), "-")
	if slug == "" {
		return "database"
	}
	return slug
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
