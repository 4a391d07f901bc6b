package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ktlens/ktlens/internal/rules"
)

var flagRuleCategory string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the detection rule catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := rules.NewCatalog()
		category := rules.Category(flagRuleCategory)
		if flagRuleCategory != "" && rules.CategoryRank(category) == len(rules.Categories) {
			return fmt.Errorf("unknown category: %s", flagRuleCategory)
		}
		for _, r := range cat.List(category) {
			marker := " "
			if r.Positive {
				marker = "+"
			}
			fmt.Fprintf(os.Stdout, "%s %-28s %-12s %-8s %s\n", marker, r.ID, r.Category, r.Severity, r.Title)
		}
		return nil
	},
}

func init() {
	rulesCmd.Flags().StringVar(&flagRuleCategory, "category", "", "Filter by category (architecture, concurrency, lifecycle, security, uiframework, kotlinidiom, testing)")
}
