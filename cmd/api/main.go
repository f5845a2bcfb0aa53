package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atpritam/Event-Flow/internal/app"
	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/clock"
	"github.com/atpritam/Event-Flow/internal/config"
	"github.com/atpritam/Event-Flow/internal/metrics"
	"github.com/atpritam/Event-Flow/internal/storage/postgres"
	transporthttp "github.com/atpritam/Event-Flow/internal/transport/http"
	"github.com/atpritam/Event-Flow/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	clk := clock.NewSystem()

	ticketRepo := postgres.NewTicketRepository(pool)
	ticketSvc := app.NewTicketService(ticketRepo, clk)
	redemptionSvc := app.NewRedemptionService(ticketRepo)
	prefRepo := postgres.NewPreferenceRepository(pool, clk)
	autoRedeem := app.NewAutoRedeemPolicy(prefRepo, redemptionSvc)

	eventRepo := postgres.NewEventRepository(pool)
	eventSvc := app.NewEventService(eventRepo, clk)
	orderRepo := postgres.NewOrderRepository(pool)
	orderSvc := app.NewOrderService(orderRepo, clk)
	userRepo := postgres.NewUserRepository(pool)
	userSvc := app.NewUserService(userRepo, clk)

	handler := transporthttp.NewRouter(transporthttp.Deps{
		Tickets:    ticketSvc,
		Redemption: redemptionSvc,
		Events:     eventSvc,
		Orders:     orderSvc,
		Users:      userSvc,
		Prefs:      prefRepo,
		AutoRedeem: autoRedeem,

		Verifier: auth.NewVerifier(cfg.AuthJWTSecret),
		Metrics:  metrics.NewCollector(),
		Clock:    clk,

		Logger:        logger,
		CORSOrigins:   cfg.CORSOriginList(),
		PublicBaseURL: cfg.PublicBaseURL,
		RateLimit:     transporthttp.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
