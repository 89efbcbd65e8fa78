package linkedin

import (
	"context"
	"errors"
	"strings"

	"go-linkedin-fetcher/internal/dom"
	"go-linkedin-fetcher/internal/scraper"
)

// Field is a logical card field and the selectors tried for it, in order.
// The same field is rendered under different class names depending on card
// variant, density and A/B experiments, so misses are expected.
type Field struct {
	Name      string
	Selectors []dom.Selector
}

var (
	TitleField = Field{
		Name: "title",
		Selectors: []dom.Selector{
			dom.CSS(".job-card-job-posting-card-wrapper__title"),
			dom.CSS(".job-card-list__title--link"),
			dom.CSS(".job-card-list__title"),
			dom.CSS(".artdeco-entity-lockup__title"),
			dom.CSS("a.job-card-container__link"),
		},
	}
	CompanyField = Field{
		Name: "company",
		Selectors: []dom.Selector{
			dom.CSS(".artdeco-entity-lockup__subtitle"),
			dom.CSS(".job-card-container__primary-description"),
			dom.CSS(".job-card-container__company-name"),
		},
	}
	LocationField = Field{
		Name: "location",
		Selectors: []dom.Selector{
			dom.CSS(".artdeco-entity-lockup__caption"),
			dom.CSS(".job-card-container__metadata-item"),
			dom.CSS(".job-card-container__metadata-wrapper li"),
		},
	}
)

type cardFields struct {
	title, company, location Field
}

func defaultFields() cardFields {
	return cardFields{title: TitleField, company: CompanyField, location: LocationField}
}

// Locator resolves fields inside one card node.
type Locator struct {
	session dom.Session
}

func NewLocator(session dom.Session) Locator {
	return Locator{session: session}
}

// ResolveField returns the first non-empty trimmed text matched by field's
// selectors, or scraper.NotAvailable. The only error is dom.ErrStaleHandle
// (or the context's), meaning node itself is gone and the caller must
// re-snapshot.
func (l Locator) ResolveField(ctx context.Context, node dom.Node, field Field) (string, error) {
	for _, sel := range field.Selectors {
		el, err := l.session.QueryOne(ctx, node, sel)
		if err != nil {
			if errors.Is(err, dom.ErrStaleHandle) {
				return "", err
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}

		text, err := l.session.ReadText(ctx, el)
		if err != nil {
			//the match vanished between query and read: the card re-rendered
			if errors.Is(err, dom.ErrStaleHandle) {
				return "", err
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, nil
		}
	}
	return scraper.NotAvailable, nil
}
