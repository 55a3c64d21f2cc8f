package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teabag-labs/teabag-snap/internal/adapters/driving/mcp"
	"github.com/teabag-labs/teabag-snap/internal/adapters/driving/rpc"
	"github.com/teabag-labs/teabag-snap/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve RPC, insight and MCP over HTTP or stdio",
	Long: `Start a local server exposing the snap's entry points.

By default an HTTP server listens on --addr with:
  POST /rpc       getAuth / setAuth
  POST /insight   labels for a transaction
  GET  /healthz   liveness
  GET  /metrics   Prometheus metrics
  /mcp            Model Context Protocol (streamable HTTP)

With --stdio, only the MCP server runs, over stdin/stdout, for
assistants that launch teabag as a subprocess:
  {
    "mcpServers": {
      "teabag": {
        "command": "/path/to/teabag",
        "args": ["serve", "--stdio"]
      }
    }
  }`,
	PreRunE: requireSettings,
	RunE:    runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8787", "HTTP listen address")
	serveCmd.Flags().Bool("stdio", false, "serve MCP over stdio instead of HTTP")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if services.RPC == nil || services.Insight == nil {
		return errNotConfigured
	}

	mcpServer, err := mcp.NewServer(&mcp.Ports{
		RPC:       services.RPC,
		Insight:   services.Insight,
		DecodeRaw: services.DecodeRaw,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if services.WatchConfig != nil {
		if err := services.WatchConfig(ctx, applyReloadedSettings); err != nil {
			logger.Warn("Config changes will need a restart: %v", err)
		}
	}

	if stdio, _ := cmd.Flags().GetBool("stdio"); stdio {
		return mcpServer.Run(ctx)
	}

	server, err := rpc.NewServer(rpc.Deps{
		RPC:        services.RPC,
		Insight:    services.Insight,
		Metrics:    services.MetricsHandler,
		MCP:        mcpServer.Handler(),
		Middleware: services.HTTPMiddleware,
	})
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	fmt.Fprintf(cmd.ErrOrStderr(), "teabag listening on %s\n", addr)
	return server.Run(ctx, addr)
}

// applyReloadedSettings re-applies the settings that can change while
// serving. Network settings take effect on restart.
func applyReloadedSettings() {
	if services.Settings == nil {
		return
	}
	settings, err := services.Settings.Get()
	if err != nil {
		logger.Warn("Ignoring config change: %v", err)
		return
	}
	logger.SetVerbose(settings.LoggingEnabled())
	logger.Info("Config reloaded")
}
