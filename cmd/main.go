package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"disk-errors/internal/adapters/locations"
	"disk-errors/internal/adapters/server"
	"disk-errors/internal/config"
	"disk-errors/internal/usecases"
)

// shutdownTimeout максимальное время на корректное завершение открытых соединений.
const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.LoadConfig("config.yaml")

	catalog := usecases.NewCatalogUseCase()
	names := usecases.NewFileNameValidator(cfg.File.MaxNameLength)
	probe := locations.NewLocationService(
		cfg.Locations.SharedContainerRoot,
		cfg.Locations.TemporaryDir,
		cfg.Locations.UserDir,
		names,
	)

	handler := server.NewHandler(catalog, names, probe, cfg.Messages)

	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Routes.Categories, handler.Categories)
	mux.HandleFunc(cfg.Routes.Category, handler.Category)
	mux.HandleFunc(cfg.Routes.Classify, handler.Classify)
	mux.HandleFunc(cfg.Routes.ValidateName, handler.ValidateName)
	mux.HandleFunc(cfg.Routes.Locations, handler.Locations)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logrus.Infof("Server running on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server shutdown error: %v", err)
	} else {
		logrus.Info("Server stopped gracefully")
	}
}
