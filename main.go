package main

import (
	"fmt"
	"os"

	"auction-house/internal/auction"
	"auction-house/internal/auth"
	"auction-house/internal/notification"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	"auction-house/utils"
)

func main() {
	args := ParseArgs()
	utils.SetLevel(args.LogLevel)
	if !args.Validate() {
		fmt.Fprintln(os.Stderr, "missing required configuration: server-addr and jwt-secret must be set")
		os.Exit(1)
	}

	store, err := buildStore(args.DB)
	if err != nil {
		utils.Fatal("failed to connect to database", map[string]any{"error": err.Error()})
	}

	dispatcher := notification.NewDispatcher(store.Notifications())
	dispatcher.Start()
	defer dispatcher.Close()

	ledger := auction.NewLedger(store.Items(), store.Bids(), dispatcher)

	gate := auth.NewGate(store.Users(), buildMailer(args.SMTP), auth.Secrets{
		JWTSecret: []byte(args.Auth.JWTSecret),
		TokenTTL:  args.Auth.TokenTTL,
		ResetTTL:  args.Auth.ResetTTL,
	}, args.Auth.ResetBaseURL)

	router := server.SetupRouter(gate, ledger, dispatcher, server.RouterConfig{
		RateLimitWindow: args.RateLimitWindow,
		RateLimitMax:    args.RateLimitMax,
	})

	utils.Info("starting auction server", map[string]any{"addr": args.ServerAddr})
	if err := router.Run(args.ServerAddr); err != nil {
		utils.Fatal("server stopped", map[string]any{"error": err.Error()})
	}
}

// buildStore picks the Postgres-backed store when a database host is
// configured and falls back to the in-memory store otherwise.
func buildStore(cfg DBConfig) (repository.Store, error) {
	if cfg.Host == "" {
		utils.Warn("no database configured, using in-memory store", nil)
		return repository.NewMemoryStore(), nil
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
	return repository.NewGormStore(dsn)
}

// buildMailer uses SMTP when a host is configured and logs mail otherwise.
func buildMailer(cfg SMTPConfig) auth.Mailer {
	if cfg.Host == "" {
		utils.Warn("no SMTP host configured, logging mail instead of sending", nil)
		return auth.LogMailer{}
	}
	return auth.NewSMTPMailer(cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.From)
}
