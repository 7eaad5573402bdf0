package config_fx

import (
	"go.uber.org/fx"
	"yogafunnel/internal/config"
)

var Module = fx.Provide(config.Load)
