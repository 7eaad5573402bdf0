package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"yogafunnel/internal/config"
	"yogafunnel/internal/metrics"
	mem "yogafunnel/pkg/memcache"
)

var Module = fx.Provide(provideSessionStore)

const sweepEvery = time.Minute

func provideSessionStore(lc fx.Lifecycle, cfg *config.Config, funnel *metrics.Funnel) mem.SessionStore {
	sessions := mem.NewSessions(cfg.SessionTTL, cfg.MaxSessions)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		// keeps sessions_active honest between new sessions
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				sessions.RunSweeper(ctx, sweepEvery, funnel.ActiveSessions)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
	return sessions
}
