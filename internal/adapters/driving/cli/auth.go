package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the connected 0xTeabag account",
	Long: `Show, store, refresh or remove the 0xTeabag credential.

The credential normally arrives from the 0xTeabag site through the setAuth
RPC method. These commands do the same from a terminal.`,
}

var authGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the connected account",
	RunE:  runAuthGet,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a credential",
	Long: `Store a credential. The token is read from --token, or prompted for
without echo when omitted.

Examples:
  teabag auth set --email me@example.com --id 7 --refresh-token r1 --expires 2030-01-01T00:00:00Z
  teabag auth set --json '{"id":7,"email":"me@example.com","token":"t","refreshToken":"r"}'`,
	RunE: runAuthSet,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the credential and all other stored state",
	RunE:  runAuthLogout,
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short:   "Exchange the refresh token for a new credential now",
	PreRunE: requireSettings,
	RunE:    runAuthRefresh,
}

var authTokenCmd = &cobra.Command{
	Use:   "token",
	Short:   "Print a valid access token, refreshing it if needed",
	PreRunE: requireSettings,
	RunE:    runAuthToken,
}

func init() {
	authGetCmd.Flags().Bool("json", false, "print the stored credential as JSON")

	authSetCmd.Flags().Int64("id", 0, "account id")
	authSetCmd.Flags().String("email", "", "account email")
	authSetCmd.Flags().String("token", "", "access token (prompted when empty)")
	authSetCmd.Flags().String("refresh-token", "", "refresh token")
	authSetCmd.Flags().String("expires", "", "token expiry, RFC 3339")
	authSetCmd.Flags().String("json", "", "full credential as JSON; overrides the other flags")

	authCmd.AddCommand(authGetCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authRefreshCmd)
	authCmd.AddCommand(authTokenCmd)
	rootCmd.AddCommand(authCmd)
}

// storedAuth reads the credential through the getAuth RPC method.
func storedAuth(cmd *cobra.Command) (*domain.AuthData, error) {
	if services.RPC == nil {
		return nil, errNotConfigured
	}
	res, err := services.RPC.Handle(cmd.Context(), domain.RPCRequest{Origin: "cli", Method: domain.RPCMethodGetAuth})
	if err != nil {
		return nil, err
	}
	auth, _ := res.(*domain.AuthData)
	return auth, nil
}

func runAuthGet(cmd *cobra.Command, _ []string) error {
	auth, err := storedAuth(cmd)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		b, err := json.MarshalIndent(auth, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	}

	if auth == nil {
		cmd.Println("Not connected.")
		return nil
	}

	cmd.Printf("Connected as %s (id %d)\n", auth.Email, auth.ID)
	cmd.Printf("  Token:   %s\n", maskToken(auth.Token))
	if auth.HasExpiry() {
		cmd.Printf("  Expires: %s\n", auth.Expires)
	} else {
		cmd.Println("  Expires: never")
	}
	return nil
}

func runAuthSet(cmd *cobra.Command, _ []string) error {
	if services.RPC == nil {
		return errNotConfigured
	}

	params, err := authParams(cmd)
	if err != nil {
		return err
	}

	_, err = services.RPC.Handle(cmd.Context(), domain.RPCRequest{
		Origin: "cli",
		Method: domain.RPCMethodSetAuth,
		Params: params,
	})
	if err != nil {
		return err
	}
	cmd.Println("Credential stored.")
	return nil
}

func authParams(cmd *cobra.Command) (json.RawMessage, error) {
	if raw, _ := cmd.Flags().GetString("json"); raw != "" {
		if !json.Valid([]byte(raw)) {
			return nil, fmt.Errorf("%w: --json is not valid JSON", domain.ErrInvalidInput)
		}
		return json.RawMessage(raw), nil
	}

	auth := domain.AuthData{}
	auth.ID, _ = cmd.Flags().GetInt64("id")
	auth.Email, _ = cmd.Flags().GetString("email")
	auth.Token, _ = cmd.Flags().GetString("token")
	auth.RefreshToken, _ = cmd.Flags().GetString("refresh-token")
	auth.Expires, _ = cmd.Flags().GetString("expires")

	if auth.Token == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Access token: ")
		token, err := readSecret(cmd.InOrStdin())
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return nil, fmt.Errorf("reading token: %w", err)
		}
		auth.Token = token
	}
	if auth.Token == "" {
		return nil, fmt.Errorf("%w: a token is required", domain.ErrInvalidInput)
	}
	if auth.HasExpiry() {
		if _, err := auth.ExpiresAt(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
	}

	return json.Marshal(auth)
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if services.Session == nil {
		return errNotConfigured
	}
	if err := services.Session.Logout(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Logged out.")
	return nil
}

func runAuthRefresh(cmd *cobra.Command, _ []string) error {
	if services.Session == nil {
		return errNotConfigured
	}

	auth, err := storedAuth(cmd)
	if err != nil {
		return err
	}
	if auth == nil {
		return domain.ErrNotAuthenticated
	}

	refreshed, err := services.Session.RefreshAuth(cmd.Context(), auth.RefreshToken)
	if err != nil {
		return err
	}
	cmd.Printf("Refreshed token for %s, expires %s\n", refreshed.Email, refreshed.Expires)
	return nil
}

func runAuthToken(cmd *cobra.Command, _ []string) error {
	if services.TokenSource == nil {
		return errNotConfigured
	}

	tok, err := services.TokenSource(cmd.Context()).Token()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok.AccessToken)
	return nil
}
