package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"yogafunnel/internal/config"
	"yogafunnel/internal/infra"
	"yogafunnel/internal/repositories"
)

var Module = fx.Options(
	fx.Provide(provideDB),
	fx.Provide(repositories.NewLeadRepository),
	fx.Provide(repositories.NewCheckoutRepository),
)

func provideDB(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.PostgresURL)
	if err != nil {
		return nil, err
	}
	if err := infra.Migrate(db); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
	return db, nil
}
