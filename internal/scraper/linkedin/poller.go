package linkedin

import (
	"context"
	"log"
	"time"

	"go-linkedin-fetcher/internal/dom"
)

// Poller waits for a query's result count to settle.
type Poller struct {
	session   dom.Session
	timeout   time.Duration
	interval  time.Duration
	stableFor time.Duration
	logger    *log.Logger
}

func NewPoller(session dom.Session, timing Timing, logger *log.Logger) *Poller {
	timing = timing.WithDefaults()
	if logger == nil {
		logger = log.Default()
	}
	return &Poller{
		session:   session,
		timeout:   timing.PollTimeout,
		interval:  timing.PollInterval,
		stableFor: timing.StableFor,
		logger:    logger,
	}
}

// Poll samples q until the count has not changed for stableFor and returns
// that snapshot. At timeout it returns the last snapshot it saw, which may
// be incomplete. A failed sample counts as zero nodes.
func (p *Poller) Poll(ctx context.Context, q dom.Query) []dom.Node {
	deadline := time.Now().Add(p.timeout)
	lastCount := -1
	var stableSince time.Time
	var last []dom.Node

	for {
		nodes, err := p.session.QueryAll(ctx, q)
		if err != nil {
			nodes = nil
		}
		now := time.Now()

		if len(nodes) != lastCount {
			lastCount = len(nodes)
			stableSince = now
		} else if now.Sub(stableSince) >= p.stableFor {
			return nodes
		}
		last = nodes

		if !now.Before(deadline) {
			p.logger.Printf("    ⏱️ Results did not settle within %v, using last snapshot (%d nodes)", p.timeout, len(last))
			return last
		}

		//sleep to whichever comes first: next sample, stability, timeout
		wait := p.interval
		if d := stableSince.Add(p.stableFor).Sub(now); d < wait {
			wait = d
		}
		if d := deadline.Sub(now); d < wait {
			wait = d
		}
		if err := dom.Sleep(ctx, wait); err != nil {
			return last
		}
	}
}
