package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/httpapp"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/application/service"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/config"
	bookingpg "github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/infrastructures/db/postgres/repo"
	cacheredis "github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/infrastructures/db/redis"
	desktracing "github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/infrastructures/db/tracing"
	tboclient "github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/infrastructures/tboair/http/client"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/logger"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/transport/http/handlers"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env, cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	tp, err := desktracing.InitTracer("tripdesk", cfg.Jaeger)
	if err != nil {
		log.Fatal("failed to init tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	log.Info("tripdesk starting", zap.String("http_addr", fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("failed to close redis client", zap.Error(err))
		}
	}()

	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	bookingRepo, err := bookingpg.New(startCtx, cfg.DB.DSN())
	startCancel()
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer bookingRepo.Close()

	tripCache := cacheredis.NewTripCacheRepository(redisClient)
	sessionStore := cacheredis.NewSessionStoreRepository(redisClient)
	tripSource := tboclient.NewClient(
		cfg.TBOAir.BaseURL,
		cfg.TBOAir.ClientID,
		cfg.TBOAir.APIKey,
		cfg.TBOAir.Timeout,
	)

	tripService := service.NewTripService(
		log,
		tripSource,
		tripCache,
		sessionStore,
		bookingRepo,
		cfg.TripCacheTTL,
		cfg.SessionTTL,
	)

	tripHandler := handlers.NewTripHandler(log, tripService, cfg.HTTP.RequestTimeout)
	sessionHandler := handlers.NewSessionHandler(log, tripService, cfg.HTTP.RequestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthHandler)
	mux.HandleFunc("/v1/trips/search", tripHandler.Search)
	mux.HandleFunc("/v1/sessions", sessionHandler.Create)
	mux.HandleFunc("/v1/sessions/", sessionHandler.Route)

	app := httpapp.New(log, cfg.HTTP.Host, cfg.HTTP.Port, mux, cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		app.Stop(shutdownCtx)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error("http server stopped", zap.Error(err))
		}
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
