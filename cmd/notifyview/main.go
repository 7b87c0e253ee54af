package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/notifyview/internal/app"
	"github.com/nhle/notifyview/internal/client"
	"github.com/nhle/notifyview/internal/clipboard"
	"github.com/nhle/notifyview/internal/credential"
	"github.com/nhle/notifyview/internal/logging"
	"github.com/nhle/notifyview/internal/model"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "notifyview:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting notifyview",
		zap.String("config", configPath),
		zap.String("base_url", cfg.API.BaseURL),
	)

	// A missing or locked keyring only means no token is sent.
	token, err := credential.Get(credential.TokenKey)
	if err != nil {
		logger.Warn("reading api token", zap.Error(err))
		token = ""
	}

	m := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Token:      token,
		NewFetcher: func(api model.APIConfig, token string) app.Fetcher {
			return client.New(api, client.WithLogger(logger), client.WithToken(token))
		},
		Clipboard: clipboard.New(os.Stderr),
		Tokens:    credential.System{},
		Logger:    logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		return fmt.Errorf("running ui: %w", err)
	}

	logger.Info("bye")
	return nil
}
