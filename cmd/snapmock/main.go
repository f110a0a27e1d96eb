// Command snapmock serves the in-memory SnapTranslate backend used for local
// development and end-to-end tests.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/mockapi"
	"github.com/aussiebroadwan/snaptranslate/pkg/slogx"
	"github.com/common-nighthawk/go-figure"
)

const version = "v0.1.0"

func main() {
	figure.NewFigure("snapmock", "cybermedium", true).Print()
	fmt.Println()

	if err := run(); err != nil {
		log.Fatalf("snapmock: %v", err)
	}
}

func run() error {
	logger := slogx.New(slogx.Config{
		Service: "snapmock",
		Version: version,
		Env:     getEnvOrDefault("ENV", "dev"),
		Level:   getEnvOrDefault("LOG_LEVEL", "info"),
		Format:  getEnvOrDefault("LOG_FORMAT", "json"),
	})

	srv, err := mockapi.New(mockapi.Config{
		AccessSecret:  []byte(os.Getenv("SNAPMOCK_ACCESS_SECRET")),
		RefreshSecret: []byte(os.Getenv("SNAPMOCK_REFRESH_SECRET")),
		AccessTTL:     getEnvDurationOrDefault("SNAPMOCK_ACCESS_TTL", 0),
		ExposeOutbox:  os.Getenv("SNAPMOCK_EXPOSE_OUTBOX") == "true",
	}, logger)
	if err != nil {
		return fmt.Errorf("init backend: %w", err)
	}

	if err := seedUsers(srv, os.Getenv("SNAPMOCK_USERS")); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + getEnvOrDefault("PORT", "8000"),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 3 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("snapmock listening", "addr", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-stop:
		logger.Info("shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("snapmock stopped")
	return nil
}

// seedUsers parses "email:username:password[:role...]" entries separated by
// commas, e.g. "root@example.com:root:Passw0rd!:admin".
func seedUsers(srv *mockapi.Server, list string) error {
	for entry := range strings.SplitSeq(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) < 3 {
			return fmt.Errorf("SNAPMOCK_USERS: entry %q needs email:username:password", entry)
		}
		if err := srv.SeedUser(parts[0], parts[1], parts[2], parts[3:]...); err != nil {
			return fmt.Errorf("seed %s: %w", parts[1], err)
		}
		slog.Info("seeded user", "username", parts[1], "roles", parts[3:])
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}
