package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/zerefharsh/amp-csr-portal/config"
	"github.com/zerefharsh/amp-csr-portal/internal/handler"
	dashboardHandler "github.com/zerefharsh/amp-csr-portal/internal/handler/dashboard"
	memberHandler "github.com/zerefharsh/amp-csr-portal/internal/handler/member"
	subscriptionHandler "github.com/zerefharsh/amp-csr-portal/internal/handler/subscription"
	ticketHandler "github.com/zerefharsh/amp-csr-portal/internal/handler/ticket"
	"github.com/zerefharsh/amp-csr-portal/internal/middleware"
	"github.com/zerefharsh/amp-csr-portal/internal/repository/postgres"
	"github.com/zerefharsh/amp-csr-portal/internal/router"
	dashboardService "github.com/zerefharsh/amp-csr-portal/internal/service/dashboard"
	memberService "github.com/zerefharsh/amp-csr-portal/internal/service/member"
	subscriptionService "github.com/zerefharsh/amp-csr-portal/internal/service/subscription"
	ticketService "github.com/zerefharsh/amp-csr-portal/internal/service/ticket"
	"github.com/zerefharsh/amp-csr-portal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.GlobalConfig{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	base := postgres.NewBaseRepository(db)
	memberRepo := postgres.NewMemberRepository(base)
	vehicleRepo := postgres.NewVehicleRepository(base)
	subscriptionRepo := postgres.NewSubscriptionRepository(base)
	ticketRepo := postgres.NewTicketRepository(base)
	metricsRepo := postgres.NewMetricsRepository(base)

	// Initialize services
	memberSvc := memberService.NewService(memberRepo, subscriptionRepo, vehicleRepo)
	subscriptionSvc := subscriptionService.NewService(subscriptionRepo, memberRepo, vehicleRepo)
	ticketSvc := ticketService.NewService(ticketRepo, memberRepo)
	dashboardSvc := dashboardService.NewService(metricsRepo)

	// Initialize handlers
	h := handler.NewHandler(db)
	memberH := memberHandler.NewHandler(memberSvc)
	subscriptionH := subscriptionHandler.NewHandler(subscriptionSvc)
	ticketH := ticketHandler.NewHandler(ticketSvc)
	dashboardH := dashboardHandler.NewHandler(dashboardSvc)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins

	// Setup router
	r := router.NewRouter(
		memberH,
		subscriptionH,
		ticketH,
		dashboardH,
		h,
		router.RouterConfig{
			RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:     cfg.RateLimit.Burst,
			Timeout:       cfg.Server.RequestTimeout,
			CORSConfig:    corsConfig,
			MetricsPrefix: "csr_portal",
		},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
