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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pausepad/internal/config"
	"pausepad/internal/db"
	"pausepad/internal/handler"
	"pausepad/internal/logging"
	"pausepad/internal/metrics"
	"pausepad/internal/repository"
	"pausepad/internal/router"
	"pausepad/internal/service"
	"pausepad/internal/timer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.CheckSecret(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	applied, err := db.RunMigrations(ctx, database, db.MigrationSource(cfg.MigrationsDir))
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		logger.Info("migrations applied", zap.Strings("names", applied))
	}

	userRepo := repository.NewUserRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	taskRepo := repository.NewTaskRepository(database)

	timerMetrics := metrics.NewTimer()
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, logger.Named("auth"))
	timerService := service.NewTimerService(settingsRepo, sessionRepo, taskRepo, service.TimerServiceOptions{
		TickInterval: cfg.TickInterval,
		Logger:       logger.Named("timer"),
		Observers: []service.ObserverSource{
			func(string) timer.Observer { return timerMetrics.Observer() },
		},
	})
	defer timerService.Close()

	engine := router.New(router.Dependencies{
		Auth:        authService,
		AuthHandler: handler.NewAuthHandler(authService),
		Timer:       handler.NewTimerHandler(timerService),
		Tasks:       handler.NewTaskHandler(service.NewTaskService(taskRepo, logger.Named("tasks"))),
		Stats:       handler.NewStatsHandler(service.NewStatsService(sessionRepo, taskRepo, time.Local, logger.Named("stats"))),
		Metrics:     timerMetrics.Handler(),
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger.Named("http"),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Int("active_timers", timerService.ActiveTimers()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
