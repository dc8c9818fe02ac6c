package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/msgquota/internal/logging"
)

// Refresher is any view whose state can be re-fetched wholesale.
type Refresher interface {
	RefreshAll(ctx context.Context)
}

// Poller re-fetches a view on a fixed interval and on demand.
//
// This is correctness-by-polling: the view tolerates being briefly stale
// and self-heals at each tick. Wake is the terminal analog of the page
// regaining foreground visibility; both triggers call the same
// full-replace fetch.
type Poller struct {
	refresher Refresher
	interval  time.Duration
	log       logging.Logger
	wake      chan struct{}
}

// NewPoller builds a poller for the given view.
func NewPoller(r Refresher, interval time.Duration, log logging.Logger) *Poller {
	return &Poller{
		refresher: r,
		interval:  interval,
		log:       log,
		wake:      make(chan struct{}, 1),
	}
}

// Run fetches once immediately, then on every tick or Wake until the
// context is cancelled. Intended to run in its own goroutine.
func (p *Poller) Run(ctx context.Context) {
	p.refresher.RefreshAll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.log.Debug(ctx, "poll tick")
			p.refresher.RefreshAll(ctx)
		case <-p.wake:
			p.refresher.RefreshAll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Wake requests an immediate out-of-cycle refresh. Never blocks; a wake
// already pending is enough.
func (p *Poller) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}
