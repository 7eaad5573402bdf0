package metrics_fx

import (
	"go.uber.org/fx"
	"yogafunnel/internal/metrics"
)

var Module = fx.Provide(metrics.Default)
