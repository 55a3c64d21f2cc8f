// Package cli implements the teabag command line: credential management,
// transaction insight, raw RPC calls, settings and the local server.
package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driving"
	"github.com/teabag-labs/teabag-snap/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// errNotConfigured is returned when a command runs before Configure.
var errNotConfigured = errors.New("service not configured")

// Services holds everything the commands call into.
type Services struct {
	RPC      driving.RPCService
	Insight  driving.InsightService
	Session  driving.AuthSession
	Settings driving.SettingsService

	// TokenSource exposes the session as an oauth2.TokenSource.
	TokenSource func(ctx context.Context) oauth2.TokenSource
	// DecodeRaw turns a raw signed transaction into a Transaction.
	DecodeRaw func(raw string) (domain.Transaction, error)

	// MetricsHandler is served at /metrics by `serve`.
	MetricsHandler http.Handler
	// HTTPMiddleware runs on every request handled by `serve`.
	HTTPMiddleware []gin.HandlerFunc
	// WatchConfig calls onChange whenever the config file changes.
	WatchConfig func(ctx context.Context, onChange func()) error
}

var services Services

// Configure installs the services used by all commands.
func Configure(s Services) {
	services = s
}

var rootCmd = &cobra.Command{
	Use:   "teabag",
	Short: "0xTeabag address labels for pending transactions",
	Long: `teabag shows who is behind the addresses in an Ethereum transaction,
using the labels your 0xTeabag organisation maintains.

Connect an account with 'teabag auth set', then look up a transaction with
'teabag insight', or run 'teabag serve' to expose the same calls over HTTP
and MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")
}

// requireSettings fails with the settings error when the label service
// endpoint or the connect page cannot be resolved. Used as PreRunE by the
// commands that need them.
func requireSettings(*cobra.Command, []string) error {
	if services.Settings == nil {
		return errNotConfigured
	}
	if _, err := services.Settings.Get(); err != nil {
		return err
	}
	return nil
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
