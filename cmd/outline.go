package cmd

import (
	"fmt"
	"strings"

	"coffee-house/pkg/content"
	"coffee-house/pkg/markdown"

	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <slug>",
	Short: "Print the table of contents and reading time of a blog post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := content.Load(contentSource())
		if err != nil {
			return err
		}
		post, err := cat.Post(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", post.Title, markdown.ReadingTime(post.Content))
		for _, h := range markdown.Outline(post.Content) {
			fmt.Fprintf(out, "%s- %s #%s\n", strings.Repeat("  ", h.Level-2), h.Text, h.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}
