package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.teabag/config.toml.

Environment variables (NODE_ENV, API_URL, SNAP_HOME, TEABAG_*) take
precedence over the file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting in the config file",
	Long: `Change a setting in the config file.

Keys: node_env, api_url, snap_home, http_timeout (seconds),
rate_limit (requests per second, 0 = unlimited), data_dir, verbose.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if services.Settings == nil {
		return errNotConfigured
	}

	settings, err := services.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("  Environment:  %s\n", settings.Environment.Description())
	cmd.Printf("  API URL:      %s\n", settings.APIURL)
	cmd.Printf("  GraphQL:      %s\n", settings.GraphQLEndpoint())
	cmd.Printf("  Snap home:    %s\n", settings.SnapHome)
	cmd.Printf("  HTTP timeout: %s\n", settings.HTTPTimeout)
	cmd.Printf("  Rate limit:   %s\n", rateLimitText(settings))
	cmd.Printf("  Data dir:     %s\n", valueOr(settings.DataDir, "(default)"))
	cmd.Printf("  Logging:      %s\n", onOff(settings.LoggingEnabled()))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if services.Settings == nil {
		return errNotConfigured
	}
	if err := services.Settings.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func rateLimitText(s *domain.AppSettings) string {
	if s.RateLimit <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%g req/s", s.RateLimit)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
