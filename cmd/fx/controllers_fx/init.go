package controllers_fx

import (
	"go.uber.org/fx"
	"yogafunnel/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewQuizController),
	fx.Provide(controllers.NewPaymentController))
