// Package analyze handles the analytics snapshot command
package analyze

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ledgerchat/cmd/root"
	"ledgerchat/internal/analytics"
	"ledgerchat/internal/ledger"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute the analytics snapshot for a categorized ledger",
	Long: `Load a categorized ledger and compute its analytics snapshot:
overall totals, per-category and per-month statistics, and the largest
expenses and credits. The snapshot is printed as JSON or YAML.`,
	RunE: analyzeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.OutputFormat, "format", "f", "json", "Output format: json or yaml")
}

func analyzeFunc(cmd *cobra.Command, args []string) error {
	root.Log.Info("Analyze command called")

	input := root.SharedFlags.Input
	if input == "" {
		return cmd.Usage()
	}

	txs, err := ledger.LoadJSON(input)
	if err != nil {
		return err
	}
	root.Log.WithField("transactions", len(txs)).Info("Loaded ledger")

	snapshot := analytics.Compute(txs)

	rendered, err := render(snapshot, root.OutputFormat)
	if err != nil {
		return err
	}

	if output := root.SharedFlags.Output; output != "" {
		if err := os.WriteFile(output, rendered, 0o644); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		root.Log.WithField("output", output).Info("Snapshot written")
		return nil
	}

	fmt.Println(string(rendered))
	return nil
}

func render(snapshot *analytics.Snapshot, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json", "":
		return json.MarshalIndent(snapshot, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(snapshot)
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
