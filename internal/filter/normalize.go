package filter

import (
	"strings"
	"unicode"

	"go-linkedin-fetcher/internal/scraper"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize strips diacritics, lower-cases and collapses whitespace, so
// "Zürich  " and "zurich" compare equal.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.Join(strings.Fields(strings.ToLower(result)), " ")
}

// Fingerprint identifies a record across runs. LinkedIn cards carry no
// stable id in the fields we extract, so the normalised fields are used.
func Fingerprint(rec scraper.JobRecord) string {
	return Normalize(rec.Title) + "|" + Normalize(rec.Company) + "|" + Normalize(rec.Location)
}
