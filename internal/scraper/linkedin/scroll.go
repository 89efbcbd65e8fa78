package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"go-linkedin-fetcher/internal/dom"
)

// scrollable results panes, most specific first
var resultContainers = []string{
	".jobs-search-results-list",
	".scaffold-layout__list > div",
	".scaffold-layout__list",
}

const scrollScriptTemplate = `(() => {
	const containers = %s;
	for (const sel of containers) {
		const el = document.querySelector(sel);
		if (el && el.scrollHeight > el.clientHeight) {
			el.scrollTop = el.scrollHeight;
			return "container";
		}
	}
	window.scrollBy(0, document.body.scrollHeight);
	return "document";
})()`

func scrollScript(containers []string) string {
	list, _ := json.Marshal(containers)
	return fmt.Sprintf(scrollScriptTemplate, list)
}

// ScrollDriver triggers lazy loading until the card count stops growing.
type ScrollDriver struct {
	session     dom.Session
	cards       dom.Query
	settle      time.Duration
	maxNoGrowth int
	maxScrolls  int
	script      string
	logger      *log.Logger
}

func NewScrollDriver(session dom.Session, cards dom.Query, timing Timing, logger *log.Logger) *ScrollDriver {
	timing = timing.WithDefaults()
	if logger == nil {
		logger = log.Default()
	}
	return &ScrollDriver{
		session:     session,
		cards:       cards,
		settle:      timing.ScrollSettle,
		maxNoGrowth: timing.MaxNoGrowthRetries,
		maxScrolls:  timing.MaxScrolls,
		script:      scrollScript(resultContainers),
		logger:      logger,
	}
}

func (d *ScrollDriver) count(ctx context.Context) int {
	nodes, err := d.session.QueryAll(ctx, d.cards)
	if err != nil {
		return 0
	}
	return len(nodes)
}

// Expand scrolls until target cards are loaded, the count has not grown
// for maxNoGrowth consecutive scrolls, or maxScrolls is spent. It only
// changes page state.
func (d *ScrollDriver) Expand(ctx context.Context, target int) {
	count := d.count(ctx)
	noGrowth := 0

	for scrolls := 0; scrolls < d.maxScrolls; scrolls++ {
		if count >= target {
			d.logger.Printf("    🎯 Loaded %d cards (target %d)", count, target)
			return
		}

		if _, err := d.session.ExecuteScript(ctx, d.script); err != nil {
			d.logger.Printf("    ⚠️ Scroll failed: %v", err)
		}
		if err := dom.Sleep(ctx, d.settle); err != nil {
			return
		}

		next := d.count(ctx)
		if next == count {
			noGrowth++
		} else {
			noGrowth = 0
			count = next
		}
		if noGrowth >= d.maxNoGrowth {
			d.logger.Printf("    🛑 No new cards after %d scrolls, stopping at %d", noGrowth, count)
			return
		}
	}

	if count < target {
		d.logger.Printf("    🛑 Scroll ceiling (%d) reached with %d cards", d.maxScrolls, count)
	}
}
