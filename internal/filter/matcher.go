package filter

import (
	"regexp"
	"strings"

	"go-linkedin-fetcher/internal/scraper"
)

// Matcher drops records whose title or company mentions an excluded
// keyword as a whole word.
type Matcher struct {
	exclude *regexp.Regexp
}

// NewMatcher builds a Matcher. Keywords are normalised; blanks are ignored.
// A Matcher with no keywords excludes nothing.
func NewMatcher(keywords []string) *Matcher {
	var parts []string
	for _, kw := range keywords {
		if kw = Normalize(kw); kw != "" {
			parts = append(parts, regexp.QuoteMeta(kw))
		}
	}
	if len(parts) == 0 {
		return &Matcher{}
	}
	return &Matcher{exclude: regexp.MustCompile(`\b(` + strings.Join(parts, "|") + `)\b`)}
}

func (m *Matcher) IsExcluded(rec scraper.JobRecord) bool {
	if m.exclude == nil {
		return false
	}
	return m.exclude.MatchString(Normalize(rec.Title + " " + rec.Company))
}
