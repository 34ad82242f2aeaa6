package cmd

import (
	"fmt"
	"sort"

	"coffee-house/pkg/content"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the content datasets",
	Long: `check decodes every dataset, verifies that ids are present and unique
per collection, and prints the size of each collection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := content.Load(contentSource())
		if err != nil {
			return fmt.Errorf("content is invalid: %w", err)
		}

		counts := cat.Counts()
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)

		out := cmd.OutOrStdout()
		for _, name := range names {
			fmt.Fprintf(out, "%-14s %d\n", name, counts[name])
		}
		fmt.Fprintln(out, "content OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
