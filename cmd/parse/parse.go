// Package parse implements the parse command, which extracts transactions
// from bank/card export files and writes them in budget format.
package parse

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chan22222/budget/cmd/root"
	"github.com/chan22222/budget/internal/budget"
	"github.com/chan22222/budget/internal/common"
	"github.com/chan22222/budget/internal/pipeline"
)

// Cmd is the parse command.
var Cmd = &cobra.Command{
	Use:   "parse [files or directories]",
	Short: "Parse bank/card export files into budget rows",
	Long: `Parse one or more export files (Toss Bank, Incheon e-um), detect the
institution for each file, extract and categorize the transactions, and
print them in budget format. With -o, the rows are written to a CSV file.`,
	Args: cobra.MinimumNArgs(1),
	Run:  parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) {
	files, err := pipeline.CollectFiles(args)
	if err != nil {
		root.Log.Fatalf("Error collecting input files: %v", err)
	}
	if len(files) == 0 {
		root.Log.Fatal("No .xlsx files found in the given paths")
	}

	p := root.NewPipeline()
	batch := p.ProcessFiles(files, root.Passphrase)
	reportBatch(batch)

	rows := budget.ToBudgetFormat(batch.Transactions)
	if root.Output != "" {
		if err := common.WriteBudgetRowsToCSV(rows, root.Output); err != nil {
			root.Log.Fatalf("Error writing CSV file: %v", err)
		}
		root.Log.Infof("Wrote %d rows to %s", len(rows), root.Output)
		return
	}

	for _, row := range rows {
		fmt.Printf("%s\t%s\t%s\t%s\t%s\t%s\n",
			row.FullDate, row.Category, row.Subcategory, row.Description,
			row.IncomeAmount, row.ExpenseAmount)
	}
}

// reportBatch logs the per-file outcome and fails the command when every
// file errored out.
func reportBatch(batch pipeline.BatchResult) {
	failed := 0
	for _, file := range batch.Files {
		switch file.Status {
		case pipeline.StatusOK:
			root.Log.Infof("%s: %d transactions", file.Name, file.Count)
		case pipeline.StatusNeedPassphrase:
			failed++
			root.Log.Warnf("%s: passphrase required (use --passphrase)", file.Name)
		default:
			failed++
			root.Log.Errorf("%s: %v", file.Name, file.Err)
		}
	}
	if failed == len(batch.Files) {
		root.Log.Fatal("No file could be processed")
	}
}
