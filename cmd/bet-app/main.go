package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/radieske/sports-bet-clients/internal/bet-app/screens"
	"github.com/radieske/sports-bet-clients/internal/bet-app/terminal"
	"github.com/radieske/sports-bet-clients/internal/shared/apiclient"
	"github.com/radieske/sports-bet-clients/internal/shared/config"
	"github.com/radieske/sports-bet-clients/internal/shared/i18n"
	"github.com/radieske/sports-bet-clients/internal/shared/logger"
	"github.com/radieske/sports-bet-clients/internal/shared/nav"
	"github.com/radieske/sports-bet-clients/internal/shared/session"
)

func main() {
	if os.Getenv("SERVICE_NAME") == "" {
		_ = os.Setenv("SERVICE_NAME", config.ServiceBetApp)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.NewForTerminal(cfg.ServiceName, cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var store session.Store = session.NewMemoryStore()
	if cfg.SessionBackend == "file" {
		store = session.NewFileStore(cfg.SessionFile)
	}

	sh, err := nav.New(ctx, store, nav.Config{
		BaseURL:  cfg.APIBaseURL,
		Entry:    screens.Home,
		Screens:  screens.All,
		Identity: nav.EmailIdentity,
		Client: []apiclient.Option{
			apiclient.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
			apiclient.WithLogger(log),
		},
		Log: log,
	})
	if err != nil {
		log.Fatal("session", zap.Error(err))
	}

	term := terminal.New(sh, i18n.New(cfg.Locale), os.Stdin, os.Stdout, log)
	term.Banner()
	if err := term.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("terminal", zap.Error(err))
		os.Exit(1)
	}
}
