package lead_fx

import (
	"context"

	"go.uber.org/fx"
	"yogafunnel/internal/config"
	"yogafunnel/internal/repositories"
	"yogafunnel/internal/services"
)

var Module = fx.Provide(provideLeadService)

func provideLeadService(
	lc fx.Lifecycle,
	cfg *config.Config,
	repo repositories.LeadRepositoryInterface,
	mail services.IMailService,
) services.LeadServiceInterface {
	leads := services.NewLeadService(repo, mail, cfg.AppBaseURL)
	lc.Append(fx.Hook{
		// let in-flight hand-offs finish before the DB closes
		OnStop: func(ctx context.Context) error {
			done := make(chan struct{})
			go func() {
				leads.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
	return leads
}
