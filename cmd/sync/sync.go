// Package sync implements the sync command, which pushes parsed
// transactions to the Google Sheets budget ledger.
package sync

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chan22222/budget/cmd/root"
	"github.com/chan22222/budget/internal/budget"
	"github.com/chan22222/budget/internal/models"
	"github.com/chan22222/budget/internal/pipeline"
	"github.com/chan22222/budget/internal/sheetstore"
)

var dryRun bool

// Cmd is the sync command.
var Cmd = &cobra.Command{
	Use:   "sync [files or directories]",
	Short: "Sync export files to the budget ledger spreadsheet",
	Long: `Parse export files, bucket the resulting rows by month, compare each
bucket against the rows already present on the matching month sheet, and
append only the rows that are not duplicates of existing ledger entries.`,
	Args: cobra.MinimumNArgs(1),
	Run:  syncFunc,
}

func init() {
	Cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve duplicates but do not append anything")
}

func syncFunc(cmd *cobra.Command, args []string) {
	files, err := pipeline.CollectFiles(args)
	if err != nil {
		root.Log.Fatalf("Error collecting input files: %v", err)
	}

	p := root.NewPipeline()
	batch := p.ProcessFiles(files, root.Passphrase)
	if needed := batch.NeedPassphrase(); len(needed) > 0 {
		for _, name := range needed {
			root.Log.Warnf("%s: passphrase required (use --passphrase)", name)
		}
	}
	if len(batch.Transactions) == 0 {
		root.Log.Fatal("No transactions extracted, nothing to sync")
	}

	rows := budget.ToBudgetFormat(batch.Transactions)
	buckets := bucketByMonth(rows)

	ctx := context.Background()
	ledger, err := root.NewLedger(ctx)
	if err != nil {
		root.Log.Fatalf("Error connecting to the ledger: %v", err)
	}

	resolver := root.NewResolver()

	appended, skipped := 0, 0
	for _, month := range monthOrder(buckets) {
		bucket := buckets[month]
		existing, err := ledger.ReadMonth(month)
		if err != nil {
			root.Log.Fatalf("Error reading sheet %s: %v", month, err)
		}

		result := resolver.Resolve(bucket, existing)
		for _, dup := range result.Duplicates {
			root.Log.WithFields(map[string]interface{}{
				"sheet":       month,
				"day":         dup.Candidate.Day,
				"description": dup.Candidate.Description,
			}).Debug("Skipping duplicate row")
		}
		skipped += result.SkippedCount

		if len(result.ToAppend) == 0 {
			root.Log.Infof("%s: nothing new (%d duplicates)", month, result.SkippedCount)
			continue
		}
		if dryRun {
			root.Log.Infof("%s: would append %d rows (%d duplicates)", month, len(result.ToAppend), result.SkippedCount)
			appended += len(result.ToAppend)
			continue
		}

		n, err := ledger.Append(month, result.ToAppend)
		if err != nil {
			root.Log.Fatalf("Error appending to sheet %s: %v", month, err)
		}
		appended += n
		root.Log.Infof("%s: appended %d rows (%d duplicates skipped)", month, n, result.SkippedCount)
	}

	root.Log.Infof("Sync complete: %d appended, %d skipped", appended, skipped)
}

// bucketByMonth groups rows by their target month sheet. Rows whose date
// cannot be mapped to a month are dropped with a warning.
func bucketByMonth(rows []models.BudgetRow) map[string][]models.BudgetRow {
	buckets := make(map[string][]models.BudgetRow)
	for _, row := range rows {
		month := budget.MonthSheet(row)
		if month == "" {
			root.Log.Warnf("Row %q has no valid date, skipping", row.Description)
			continue
		}
		buckets[month] = append(buckets[month], row)
	}
	return buckets
}

// monthOrder returns the bucket keys in calendar order so appends happen
// January first.
func monthOrder(buckets map[string][]models.BudgetRow) []string {
	index := make(map[string]int, len(sheetstore.Months))
	for i, month := range sheetstore.Months {
		index[month] = i
	}
	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return index[months[i]] < index[months[j]] })
	return months
}
