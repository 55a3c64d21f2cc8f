package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

var insightCmd = &cobra.Command{
	Use:   "insight [transaction-json]",
	Short: "Show address labels for a transaction",
	Long: `Look up 0xTeabag labels for the parties of a transaction.

The transaction is given as JSON (argument, --file, or stdin with --file -)
in the wallet's format, or as a raw signed transaction with --raw.

Examples:
  teabag insight '{"from":"0x...","to":"0x...","data":"0xa9059cbb..."}'
  teabag insight --file tx.json
  teabag insight --raw 0x02f8...`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: requireSettings,
	RunE:    runInsight,
}

func init() {
	insightCmd.Flags().StringP("file", "f", "", "read the transaction JSON from a file (- for stdin)")
	insightCmd.Flags().String("raw", "", "raw signed transaction, 0x-prefixed hex")
	insightCmd.Flags().Bool("json", false, "print the content tree as JSON")
	rootCmd.AddCommand(insightCmd)
}

func runInsight(cmd *cobra.Command, args []string) error {
	if services.Insight == nil {
		return errNotConfigured
	}

	tx, err := transactionFromFlags(cmd, args)
	if err != nil {
		return err
	}
	content, err := services.Insight.OnTransaction(cmd.Context(), tx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(content)
	}

	fmt.Fprintln(out, newRenderer(out).Render(*content))
	return nil
}

func transactionFromFlags(cmd *cobra.Command, args []string) (domain.Transaction, error) {
	raw, _ := cmd.Flags().GetString("raw")
	file, _ := cmd.Flags().GetString("file")

	var tx domain.Transaction
	switch {
	case raw != "":
		if services.DecodeRaw == nil {
			return tx, fmt.Errorf("raw transactions: %w", domain.ErrNotImplemented)
		}
		return services.DecodeRaw(raw)

	case file != "":
		var r io.Reader = cmd.InOrStdin()
		if file != "-" {
			f, err := os.Open(file)
			if err != nil {
				return tx, fmt.Errorf("opening transaction: %w", err)
			}
			defer f.Close()
			r = f
		}
		if err := json.NewDecoder(r).Decode(&tx); err != nil {
			return tx, fmt.Errorf("%w: transaction JSON: %w", domain.ErrInvalidInput, err)
		}
		return tx, nil

	case len(args) == 1:
		if err := json.NewDecoder(strings.NewReader(args[0])).Decode(&tx); err != nil {
			return tx, fmt.Errorf("%w: transaction JSON: %w", domain.ErrInvalidInput, err)
		}
		return tx, nil

	default:
		return tx, fmt.Errorf("%w: give a transaction as JSON, --file or --raw", domain.ErrInvalidInput)
	}
}
