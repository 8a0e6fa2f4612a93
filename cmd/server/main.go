package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee-directory/internal/config"
	"employee-directory/internal/database"
	"employee-directory/internal/handler"
	"employee-directory/internal/logging"
	"employee-directory/internal/repository"
	"employee-directory/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logging.New("employee-directory").Error(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Server.AppName)
	if cfg.JWT.Secret == "" {
		log.Warn(ctx, "jwt secret is not set; auth requests will fail")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Error(ctx, "failed to open database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	auth, err := service.NewAuthService(repository.NewUserRepository(db), cfg.JWT, log)
	if err != nil {
		log.Error(ctx, "failed to init auth service", "error", err)
		os.Exit(1)
	}

	var notifiers service.Notifiers
	if cfg.Redis.Enabled {
		rdb := service.NewRedisClient(cfg.Redis)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn(ctx, "redis is unreachable, change events will be dropped until it recovers", "addr", cfg.Redis.Addr, "error", err)
		}
		notifiers = append(notifiers, service.NewRedisNotifier(rdb, cfg.Redis.ChannelPrefix))
	}
	sheet, err := service.NewSheetNotifier(ctx, cfg.Sheets)
	if err != nil {
		log.Warn(ctx, "sheet sync disabled", "error", err)
	} else if sheet != nil {
		notifiers = append(notifiers, sheet)
	}

	var notifier service.Notifier
	if len(notifiers) > 0 {
		notifier = notifiers
	}
	employees := service.NewEmployeeService(repository.NewEmployeeRepository(db), notifier, log)

	app := handler.NewApp(cfg, handler.Services{Auth: auth, Employees: employees}, log)

	go func() {
		log.Info(ctx, "server listening", "port", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Error(ctx, "server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error(ctx, "shutdown failed", "error", err)
	}
	if err := employees.Close(shutdownCtx); err != nil {
		log.Warn(ctx, "pending employee notifications were not delivered", "error", err)
	}
}
