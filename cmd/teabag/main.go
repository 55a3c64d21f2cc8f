// Command teabag looks up 0xTeabag address labels for Ethereum transactions
// and manages the connected 0xTeabag account.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/teabag-labs/teabag-snap/internal/adapters/driven/auth"
	"github.com/teabag-labs/teabag-snap/internal/adapters/driven/config/file"
	"github.com/teabag-labs/teabag-snap/internal/adapters/driven/ethtx"
	"github.com/teabag-labs/teabag-snap/internal/adapters/driven/graphql"
	"github.com/teabag-labs/teabag-snap/internal/adapters/driven/metrics"
	"github.com/teabag-labs/teabag-snap/internal/adapters/driven/storage/memory"
	"github.com/teabag-labs/teabag-snap/internal/adapters/driven/storage/sqlite"
	"github.com/teabag-labs/teabag-snap/internal/adapters/driven/storage/state"
	"github.com/teabag-labs/teabag-snap/internal/adapters/driving/cli"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
	"github.com/teabag-labs/teabag-snap/internal/core/services"
	"github.com/teabag-labs/teabag-snap/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cleanup, err := wire()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}

	err = cli.Execute(ctx)
	cleanup()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// wire builds the adapters and services and hands them to the CLI.
func wire() (func(), error) {
	cli.SetVersion(version)

	var (
		cfg         driven.ConfigStore
		watchConfig func(ctx context.Context, onChange func()) error
	)
	fileCfg, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("Config file unavailable, using environment only: %v", err)
		cfg = memory.NewConfigStore()
	} else {
		cfg = fileCfg
		watchConfig = fileCfg.Watch
	}
	settingsService := services.NewSettingsService(cfg, nil)

	// Commands that reach the label service re-check the settings and fail
	// with this error. The rest, `settings set` included, run on defaults.
	settings, err := settingsService.Get()
	if err != nil {
		logger.Debug("Settings incomplete: %v", err)
		defaults := settingsService.GetDefaults()
		settings = &defaults
	}
	logger.SetVerbose(settings.LoggingEnabled())

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening state store: %w", err)
	}
	creds := state.NewCredentialStore(store)

	m := metrics.NewMetrics("teabag")
	transport := graphql.NewTransport(settings.GraphQLEndpoint(),
		graphql.WithTimeout(settings.HTTPTimeout),
		graphql.WithRateLimit(settings.RateLimit),
	)

	session := services.NewAuthSessionService(creds, transport, services.WithObserver(m))
	client := services.NewAPIClient(session, creds, transport, services.WithObserver(m))
	insight := services.NewInsightService(creds, client, settings.SnapHome,
		services.WithTxValidator(ethtx.Validate))

	cli.Configure(cli.Services{
		RPC:      services.NewRPCService(creds),
		Insight:  insight,
		Session:  session,
		Settings: settingsService,
		TokenSource: func(ctx context.Context) oauth2.TokenSource {
			return auth.NewTokenSource(ctx, session)
		},
		DecodeRaw:      ethtx.DecodeRaw,
		MetricsHandler: m.Handler(),
		HTTPMiddleware: []gin.HandlerFunc{metrics.Middleware(m)},
		WatchConfig:    watchConfig,
	})

	return func() {
		if err := store.Close(); err != nil {
			logger.Warn("Closing state store: %v", err)
		}
	}, nil
}
