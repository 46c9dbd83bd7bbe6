package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/blog-platform/config"
	"github.com/ErlanBelekov/blog-platform/internal/email"
	"github.com/ErlanBelekov/blog-platform/internal/health"
	"github.com/ErlanBelekov/blog-platform/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/blog-platform/internal/log"
	"github.com/ErlanBelekov/blog-platform/internal/maintenance"
	"github.com/ErlanBelekov/blog-platform/internal/metrics"
	"github.com/ErlanBelekov/blog-platform/internal/session"
	"github.com/ErlanBelekov/blog-platform/internal/token"
	httptransport "github.com/ErlanBelekov/blog-platform/internal/transport/http"
	"github.com/ErlanBelekov/blog-platform/internal/transport/http/handler"
	"github.com/ErlanBelekov/blog-platform/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	tokens, err := token.NewService([]byte(cfg.JWTSecret))
	if err != nil {
		stop()
		log.Fatalf("token service: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	codeRepo := postgres.NewVerificationCodeRepository(pool)
	postRepo := postgres.NewPostRepository(pool)

	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	sessions := session.NewManager(tokens, userRepo, cfg.Production(), logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, codeRepo, emailSender, logger)
	postUsecase := usecase.NewPostUsecase(postRepo)

	authHandler := handler.NewAuthHandler(authUsecase, sessions, logger)
	userHandler := handler.NewUserHandler(sessions, postUsecase, logger)
	postHandler := handler.NewPostHandler(sessions, postUsecase, logger)

	purger, err := maintenance.NewPurger(codeRepo, cfg.PurgeCron, logger)
	if err != nil {
		stop()
		log.Fatalf("purger: %v", err)
	}

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, tokens, authHandler, userHandler, postHandler),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go purger.Start(ctx)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
