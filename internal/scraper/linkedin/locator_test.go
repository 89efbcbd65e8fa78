package linkedin

import (
	"context"
	"testing"

	"go-linkedin-fetcher/internal/dom"
	"go-linkedin-fetcher/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveField(t *testing.T) {
	tests := []struct {
		name     string
		card     string
		field    Field
		expected string
	}{
		{
			name:     "first selector",
			card:     `<div class="job-card-container"><span class="job-card-job-posting-card-wrapper__title"> Go Engineer </span></div>`,
			field:    TitleField,
			expected: "Go Engineer",
		},
		{
			name:     "falls back in order",
			card:     `<div class="job-card-container"><a class="job-card-container__link">Backend Dev</a><span class="artdeco-entity-lockup__title">Platform Dev</span></div>`,
			field:    TitleField,
			expected: "Platform Dev",
		},
		{
			name:     "blank match is skipped",
			card:     `<div class="job-card-container"><span class="artdeco-entity-lockup__subtitle">   </span><span class="job-card-container__company-name">Acme</span></div>`,
			field:    CompanyField,
			expected: "Acme",
		},
		{
			name:     "nested location",
			card:     `<div class="job-card-container"><ul class="job-card-container__metadata-wrapper"><li>Berlin (Hybrid)</li></ul></div>`,
			field:    LocationField,
			expected: "Berlin (Hybrid)",
		},
		{
			name:     "no match",
			card:     `<div class="job-card-container"><span class="something-else">x</span></div>`,
			field:    LocationField,
			expected: scraper.NotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, "<html><body>"+tt.card+"</body></html>")
			nodes, err := s.QueryAll(context.Background(), DefaultCardQuery)
			require.NoError(t, err)
			require.Len(t, nodes, 1)

			got, err := NewLocator(s).ResolveField(context.Background(), nodes[0], tt.field)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveFieldStaleCard(t *testing.T) {
	s := newSession(t, resultsPage(1))
	nodes, err := s.QueryAll(context.Background(), DefaultCardQuery)
	require.NoError(t, err)
	require.NoError(t, s.Render(resultsPage(1)))

	_, err = NewLocator(s).ResolveField(context.Background(), nodes[0], TitleField)
	assert.ErrorIs(t, err, dom.ErrStaleHandle)
}
