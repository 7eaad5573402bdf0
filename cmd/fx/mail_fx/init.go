package mail_fx

import (
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"yogafunnel/internal/config"
	"yogafunnel/internal/services"
)

var Module = fx.Provide(provideMailService)

// provideMailService returns nil when SMTP is not configured; leads are
// still stored.
func provideMailService(cfg *config.Config) services.IMailService {
	mailService, err := services.NewSMTPMailService(services.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		From:       cfg.SMTP.From,
		FromName:   cfg.SMTP.FromName,
		UseSSL:     cfg.SMTP.UseSSL,
		RequireTLS: cfg.SMTP.RequireTLS,
		AppName:    cfg.AppName,
	})
	if err != nil {
		log.Warn().Err(err).Msg("SMTP mail service disabled")
		return nil
	}
	return mailService
}
