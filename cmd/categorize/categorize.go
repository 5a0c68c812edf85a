// Package categorize handles the transaction categorization command
package categorize

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ledgerchat/cmd/root"
	"ledgerchat/internal/categorizer"
	"ledgerchat/internal/ledger"
	"ledgerchat/internal/models"
	"ledgerchat/internal/store"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a bank statement using keyword rules and the Gemini model",
	Long: `Read a bank statement CSV export, assign a category to every
transaction, and write the categorized ledger as JSON. The Gemini model
categorizes transactions in batches; any batch that fails falls back to
keyword rules, so the command always produces a fully categorized ledger.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().BoolVar(&root.RulesOnly, "rules-only", false, "Skip the Gemini model and use keyword rules only")
	Cmd.Flags().IntVar(&root.BatchSize, "batch-size", 0, "Transactions per model request (default from config)")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	root.Log.Info("Categorize command called")

	input := root.SharedFlags.Input
	if input == "" {
		return cmd.Usage()
	}
	output := root.SharedFlags.Output
	if output == "" {
		output = deriveOutputPath(input)
	}

	txs, err := loadLedger(input)
	if err != nil {
		return err
	}
	root.Log.WithField("transactions", len(txs)).Info("Loaded ledger")

	rules, err := loadRuleCategorizer()
	if err != nil {
		root.Log.Warnf("Failed to load category rules, using built-in defaults: %v", err)
		rules = categorizer.NewRuleCategorizer()
	}

	var classifier categorizer.Classifier
	if !root.RulesOnly && aiEnabled() {
		client, err := newGeminiClient(cmd.Context())
		if err != nil {
			root.Log.Warnf("Gemini client unavailable, falling back to keyword rules: %v", err)
		} else {
			classifier = client
		}
	}

	batchSize := root.BatchSize
	if batchSize <= 0 {
		batchSize = configuredBatchSize()
	}

	batcher := categorizer.NewBatchCategorizer(classifier, rules, root.Log)
	assignments := batcher.CategorizeAll(cmd.Context(), models.NewTxRefs(txs), batchSize)
	ledger.ApplyCategories(txs, assignments)

	if batcher.DegradedBatches > 0 {
		root.Log.WithField("batches", batcher.DegradedBatches).
			Warn("Some batches were categorized by keyword rules after model failures")
	}

	if err := ledger.SaveJSON(txs, output); err != nil {
		return err
	}
	root.Log.WithField("output", output).Info("Categorized ledger written")
	return nil
}

// loadLedger accepts either a raw CSV export or an already categorized
// JSON ledger.
func loadLedger(path string) ([]models.Transaction, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ledger.LoadJSON(path)
	}
	return ledger.LoadRawCSV(path)
}

func deriveOutputPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_categorized.json"
}

func loadRuleCategorizer() (*categorizer.RuleCategorizer, error) {
	rulesFile := ""
	if root.AppConfig != nil {
		rulesFile = root.AppConfig.Data.RulesFile
	}
	ruleSet, err := store.NewRuleStore(rulesFile).LoadRules()
	if err != nil {
		return nil, err
	}
	return categorizer.NewRuleCategorizerFromRules(ruleSet), nil
}

func aiEnabled() bool {
	return root.AppConfig == nil || root.AppConfig.AI.Enabled
}

func configuredBatchSize() int {
	if root.AppConfig != nil && root.AppConfig.AI.BatchSize > 0 {
		return root.AppConfig.AI.BatchSize
	}
	return categorizer.DefaultBatchSize
}

func newGeminiClient(ctx context.Context) (*categorizer.GeminiClient, error) {
	opts := categorizer.GeminiOptions{}
	if root.AppConfig != nil {
		opts.APIKey = root.AppConfig.AI.APIKey
		opts.Model = root.AppConfig.AI.Model
		opts.RequestsPerMinute = root.AppConfig.AI.RequestsPerMinute
		opts.TimeoutSeconds = root.AppConfig.AI.TimeoutSeconds
	}
	return categorizer.NewGeminiClient(ctx, opts, root.Log)
}
