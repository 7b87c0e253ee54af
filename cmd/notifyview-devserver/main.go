package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nhle/notifyview/internal/devserver"
	"github.com/nhle/notifyview/internal/logging"
	"github.com/nhle/notifyview/internal/model"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the YAML config file")
	addr := flag.String("addr", "", "listen address (overrides devserver.addr)")
	fixtures := flag.String("fixtures", "", "JSON fixtures file (overrides devserver.fixtures)")
	flag.Parse()

	if err := run(*configPath, *addr, *fixtures); err != nil {
		fmt.Fprintln(os.Stderr, "notifyview-devserver:", err)
		os.Exit(1)
	}
}

func run(configPath, addr, fixtures string) error {
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.DevServer.Addr
	}
	if fixtures == "" {
		fixtures = cfg.DevServer.Fixtures
	}

	logger, err := logging.NewConsole(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	notifications := devserver.SampleNotifications(time.Now())
	if fixtures != "" {
		notifications, err = devserver.LoadFixtures(fixtures)
		if err != nil {
			return err
		}
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              addr,
		Handler:           devserver.NewRouter(notifications, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving notifications",
			zap.String("addr", addr),
			zap.Int("count", len(notifications)),
			zap.String("fixtures", fixtures),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shCtx)
}
