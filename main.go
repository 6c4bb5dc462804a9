package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/config"
	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/handler"
	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/repository/sqlite"
	"github.com/JeffreyGeng/VehicleMaintenanceTracker/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	authService := service.NewAuthService(db.Users(), cfg.JWTSecret, cfg.BcryptCost)
	vehicleService := service.NewVehicleService(db.Vehicles())
	maintenanceService := service.NewMaintenanceService(db.Maintenance(), db.Vehicles())
	reminderService := service.NewReminderService(db.Maintenance(), service.SlogSink{})
	scheduler := service.NewReminderScheduler(reminderService, cfg.ReminderHour, nil)

	// Allow a handful of login attempts per client address per minute.
	loginLimiter := service.NewTokenBucket(0.2, 5)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, vehicleService, maintenanceService, loginLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(handler.RequestLogger(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("reminder scheduler starting", "hour", cfg.ReminderHour)
		if err := scheduler.Start(ctx); err != nil && err != context.Canceled {
			slog.Error("reminder scheduler stopped", "error", err)
		}
	}()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
