// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ledgerchat/internal/config"
	"ledgerchat/internal/ledger"
)

// CommonFlags represents the flags that are shared by multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig holds the resolved configuration after PersistentPreRun
	AppConfig *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ledgerchat",
		Short: "A CLI tool to categorize bank statement transactions and answer questions about them.",
		Long: `ledgerchat ingests bank statement CSV exports, categorizes every
transaction with keyword rules and the Gemini model, precomputes spending
analytics, and answers natural-language questions about the ledger.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ledgerchat!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
			ledger.SetLogger(Log)

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Warnf("Failed to load configuration, using defaults: %v", err)
				return
			}
			AppConfig = cfg
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific categorize command flags
	RulesOnly bool
	BatchSize int

	// Specific analyze command flags
	OutputFormat string

	// Specific ask command flags
	Question string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}
