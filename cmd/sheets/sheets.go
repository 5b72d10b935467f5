// Package sheets implements read-only inspection commands for the ledger
// spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chan22222/budget/cmd/root"
)

// Cmd is the sheets command group.
var Cmd = &cobra.Command{
	Use:   "sheets",
	Short: "Inspect the ledger spreadsheet",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sheet tabs of the ledger spreadsheet",
	Run:   listFunc,
}

var readCmd = &cobra.Command{
	Use:   "read [month sheet]",
	Short: "Print the data rows of one month sheet",
	Long:  `Print the populated rows of a month sheet, e.g. "budget sheets read 3월".`,
	Args:  cobra.ExactArgs(1),
	Run:   readFunc,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(readCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	ledger, err := root.NewLedger(context.Background())
	if err != nil {
		root.Log.Fatalf("Error connecting to the ledger: %v", err)
	}
	titles, err := ledger.ListSheets()
	if err != nil {
		root.Log.Fatalf("Error listing sheets: %v", err)
	}
	for _, title := range titles {
		fmt.Println(title)
	}
}

func readFunc(cmd *cobra.Command, args []string) {
	ledger, err := root.NewLedger(context.Background())
	if err != nil {
		root.Log.Fatalf("Error connecting to the ledger: %v", err)
	}
	rows, err := ledger.ReadMonth(args[0])
	if err != nil {
		root.Log.Fatalf("Error reading sheet %s: %v", args[0], err)
	}
	if len(rows) == 0 {
		root.Log.Infof("Sheet %s has no data rows", args[0])
		return
	}
	for _, row := range rows {
		fmt.Println(strings.Join(row, "\t"))
	}
}
