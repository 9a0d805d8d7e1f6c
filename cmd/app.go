// Package cmd wires configuration, storage, services, and the HTTP server
// into a runnable application.
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	userapp "bookstore/application/user"
	"bookstore/config"
	"bookstore/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the assembled application.
type App struct {
	config          *config.Config
	server          *http.Server
	db              *gorm.DB
	scheduler       *cron.Cron
	userService     *userapp.ApplicationService
	publisherCloser func() error
}

// Run starts the scheduler and the HTTP server, then blocks until SIGINT
// or SIGTERM and shuts both down gracefully.
func (a *App) Run() error {
	ctx := context.Background()

	if err := a.userService.EnsureAdmin(ctx, a.config.Admin.Email, a.config.Admin.Password); err != nil {
		return err
	}

	a.scheduler.Start()

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return a.Shutdown()
}

// Shutdown stops the scheduler, drains the HTTP server, and closes the
// database and broker connections.
func (a *App) Shutdown() error {
	logger.Info("Shutting down")

	cronCtx := a.scheduler.Stop()
	<-cronCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	if a.publisherCloser != nil {
		if err := a.publisherCloser(); err != nil {
			logger.Error("Broker close failed", zap.Error(err))
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	logger.Info("Shutdown complete")
	return logger.Sync()
}
