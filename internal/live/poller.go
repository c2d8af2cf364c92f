// Package live pushes periodically fetched readings to websocket clients.
package live

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Poller runs Fetch on a fixed interval and hands each result to Publish.
// Every tick runs in its own goroutine: a slow fetch neither blocks nor
// cancels the ticks that follow it.
type Poller struct {
	Interval time.Duration
	Fetch    func(ctx context.Context) (any, error)
	Publish  func(v any)
	Log      *zap.SugaredLogger
}

// Run ticks once immediately and then every Interval until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	go p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	v, err := p.Fetch(ctx)
	if err != nil {
		if p.Log != nil {
			p.Log.Warnw("poll failed", "error", err)
		}
		return
	}
	if v == nil {
		return
	}
	p.Publish(v)
}
