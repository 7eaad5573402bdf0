package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"yogafunnel/cmd/fx/config_fx"
	"yogafunnel/cmd/fx/controllers_fx"
	"yogafunnel/cmd/fx/db_fx"
	"yogafunnel/cmd/fx/lead_fx"
	"yogafunnel/cmd/fx/mail_fx"
	"yogafunnel/cmd/fx/memcache_fx"
	"yogafunnel/cmd/fx/metrics_fx"
	"yogafunnel/cmd/fx/payment_service_fx"
	"yogafunnel/cmd/fx/quiz_fx"
	"yogafunnel/internal/api/controllers"
	"yogafunnel/internal/config"
	"yogafunnel/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.Invoke(SetupLogging),
		metrics_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		lead_fx.Module,
		quiz_fx.Module,
		payment_service_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func SetupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.GinMode == gin.DebugMode {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("HTTP server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	quizController *controllers.QuizController,
	paymentController *controllers.PaymentController) *gin.Engine {

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	RegisterRoutes(r, quizController, paymentController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	quizController *controllers.QuizController,
	paymentController *controllers.PaymentController) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	quizGroup := r.Group("/quiz")
	quizGroup.GET("/plans", quizController.ListPlans)
	quizGroup.POST("/sessions", quizController.StartSession)

	sessionGroup := quizGroup.Group("/sessions/:sessionId")
	sessionGroup.GET("", quizController.GetSession)
	sessionGroup.POST("/steps/:step/select", quizController.SelectOption)
	sessionGroup.POST("/steps/:step/continue", quizController.Continue)
	sessionGroup.GET("/steps/:step/next", quizController.PeekNext)
	sessionGroup.POST("/bmi", quizController.SetBMI)
	sessionGroup.POST("/email", quizController.CaptureEmail)
	sessionGroup.POST("/plan-choice", quizController.ChoosePlan)
	sessionGroup.GET("/summary", quizController.Summary)

	checkoutGroup := r.Group("/checkout")
	checkoutGroup.POST("", paymentController.CreateCheckout)
	checkoutGroup.POST("/webhook", paymentController.HandleWebhook)
}
