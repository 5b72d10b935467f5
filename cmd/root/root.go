// Package root contains the root command for the application.
package root

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chan22222/budget/internal/budget"
	"github.com/chan22222/budget/internal/categorizer"
	"github.com/chan22222/budget/internal/common"
	"github.com/chan22222/budget/internal/config"
	"github.com/chan22222/budget/internal/eeumparser"
	"github.com/chan22222/budget/internal/pipeline"
	"github.com/chan22222/budget/internal/sheetstore"
	"github.com/chan22222/budget/internal/tossparser"
	"github.com/chan22222/budget/internal/workbook"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration, available after
	// PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "budget",
		Short: "Import Korean bank/card exports into a spreadsheet budget ledger.",
		Long: `budget parses bank and card transaction exports (Toss Bank, Incheon e-um),
normalizes and categorizes them, and syncs the result to a Google Sheets
budget ledger without creating duplicate entries.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to budget!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Push the configured logger into every package.
			workbook.SetLogger(Log)
			tossparser.SetLogger(Log)
			eeumparser.SetLogger(Log)
			categorizer.SetLogger(Log)
			budget.SetLogger(Log)
			pipeline.SetLogger(Log)
			sheetstore.SetLogger(Log)
			common.SetLogger(Log)

			common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])

			if Spreadsheet != "" {
				Cfg.Sheets.SpreadsheetID = sheetstore.SpreadsheetIDFromInput(Spreadsheet)
			}
			if DedupeMode != "" {
				Cfg.Dedupe.Mode = DedupeMode
			}
		},
	}

	// Shared flags accessible to all commands.
	Passphrase  string
	Output      string
	Spreadsheet string
	DedupeMode  string
)

// Init initializes the root command and all persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&Passphrase, "passphrase", "p", "", "Passphrase for protected export files")
	Cmd.PersistentFlags().StringVarP(&Output, "output", "o", "", "Output CSV file")
	Cmd.PersistentFlags().StringVarP(&Spreadsheet, "spreadsheet", "s", "", "Ledger spreadsheet ID or URL")
	Cmd.PersistentFlags().StringVar(&DedupeMode, "dedupe", "", "Duplicate detection mode: fuzzy or strict")
}

// NewCategorizer builds the categorizer from config, attaching the Gemini
// fallback only when AI categorization is enabled.
func NewCategorizer() *categorizer.Categorizer {
	if Cfg != nil && Cfg.AI.Enabled {
		client := categorizer.NewGeminiClient(Cfg.AI.APIKey, Cfg.AI.Model)
		return categorizer.NewWithAI(client, time.Duration(Cfg.AI.TimeoutSeconds)*time.Second)
	}
	return categorizer.New()
}

// NewPipeline builds the import pipeline from config.
func NewPipeline() *pipeline.Pipeline {
	var fallbacks []string
	if Cfg != nil {
		fallbacks = Cfg.Passphrases.Fallback
	}
	return pipeline.New(workbook.NewOpener(fallbacks), NewCategorizer())
}

// NewResolver builds the duplicate resolver from config.
func NewResolver() *budget.Resolver {
	mode := budget.Fuzzy
	minOverlap := budget.DefaultMinOverlap
	if Cfg != nil {
		mode = budget.Strictness(Cfg.Dedupe.Mode)
		minOverlap = Cfg.Dedupe.MinOverlap
	}
	return budget.NewResolver(mode, minOverlap)
}

// NewCredentialResolver builds the Google credential resolver from config.
func NewCredentialResolver() *sheetstore.CredentialResolver {
	tokenFile := "token.json"
	credentialsFile := "credentials.json"
	if Cfg != nil {
		tokenFile = Cfg.Sheets.TokenFile
		credentialsFile = Cfg.Sheets.CredentialsFile
	}
	return sheetstore.NewCredentialResolver(tokenFile, credentialsFile)
}

// NewLedger builds the Google Sheets ledger client from config.
func NewLedger(ctx context.Context) (sheetstore.Ledger, error) {
	return sheetstore.NewClient(ctx, NewCredentialResolver(), sheetstore.Options{
		SpreadsheetID: Cfg.Sheets.SpreadsheetID,
		DataRange:     Cfg.Sheets.DataRange,
		AppendRange:   Cfg.Sheets.AppendRange,
	})
}
