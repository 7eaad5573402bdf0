package payment_service_fx

import (
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"yogafunnel/internal/config"
	"yogafunnel/internal/metrics"
	"yogafunnel/internal/repositories"
	"yogafunnel/internal/services"
)

const providerName = "payos"

var Module = fx.Provide(
	providePaymentService,
)

func providePaymentService(
	cfg *config.Config,
	checkouts repositories.CheckoutRepositoryInterface,
	quizService services.QuizServiceInterface,
	plans services.PlanServiceInterface,
	funnel *metrics.Funnel,
) services.PaymentService {
	gateway, err := services.NewPayOSGateway(services.PayOSConfig{
		ClientID:     cfg.PayOS.ClientID,
		ApiKey:       cfg.PayOS.APIKey,
		ChecksumKey:  cfg.PayOS.ChecksumKey,
		ReturnURL:    cfg.PayOS.ReturnURL,
		CancelURL:    cfg.PayOS.CancelURL,
		ProviderName: providerName,
	})
	if err != nil {
		log.Warn().Err(err).Msg("payOS gateway disabled, checkout will answer 502")
	}
	return services.NewPaymentService(checkouts, gateway, quizService, plans, funnel, providerName)
}
