package quiz_fx

import (
	"go.uber.org/fx"
	"yogafunnel/internal/services"
)

var Module = fx.Options(
	fx.Provide(services.NewPlanService),
	fx.Provide(services.NewQuizService),
)
