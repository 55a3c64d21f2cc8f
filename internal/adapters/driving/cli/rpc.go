package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc <method> [params-json]",
	Short: "Call an RPC method directly",
	Long: `Call one of the snap's RPC methods, as a companion site would.

Methods:
  getAuth   return the stored credential
  setAuth   store the credential given as params (null removes it)

Examples:
  teabag rpc getAuth
  teabag rpc setAuth '{"id":1,"email":"me@example.com","token":"t","refreshToken":"r"}'
  teabag rpc setAuth null`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRPC,
}

func init() {
	rpcCmd.Flags().String("origin", "cli", "origin reported to the handler")
	rootCmd.AddCommand(rpcCmd)
}

func runRPC(cmd *cobra.Command, args []string) error {
	if services.RPC == nil {
		return errNotConfigured
	}

	req := domain.RPCRequest{Method: args[0]}
	req.Origin, _ = cmd.Flags().GetString("origin")
	if len(args) == 2 {
		if !json.Valid([]byte(args[1])) {
			return fmt.Errorf("%w: params are not valid JSON", domain.ErrInvalidInput)
		}
		req.Params = json.RawMessage(args[1])
	}

	res, err := services.RPC.Handle(cmd.Context(), req)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
