// Package categorize implements the categorize command, a standalone entry
// point to the transaction categorizer.
package categorize

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chan22222/budget/cmd/root"
	"github.com/chan22222/budget/internal/models"
)

var (
	description string
	memo        string
	isIncome    bool
	listGroups  bool
)

// Cmd is the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction description",
	Long: `Run the keyword categorizer (and the AI fallback, when enabled) against
one description and print the resulting category pair. Useful for checking
where a merchant will land before syncing.`,
	Run: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().StringVarP(&memo, "memo", "m", "", "Optional memo text considered alongside the description")
	Cmd.Flags().BoolVar(&isIncome, "income", false, "Treat the transaction as income")
	Cmd.Flags().BoolVar(&listGroups, "list", false, "Print the category taxonomy and exit")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	if listGroups {
		for _, group := range models.Taxonomy {
			fmt.Printf("%s: %s\n", group.Name, strings.Join(group.Subcategories, ", "))
		}
		return
	}
	if description == "" {
		root.Log.Fatal("A description is required (use --description)")
	}

	cat := root.NewCategorizer()
	result := cat.Categorize(description, memo, isIncome)
	fmt.Printf("%s / %s\n", result.Main, result.Sub)
}
