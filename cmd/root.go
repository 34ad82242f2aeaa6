package cmd

import (
	"fmt"
	"io/fs"
	"os"

	"coffee-house/pkg/config"
	"coffee-house/pkg/content"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "coffee-house",
	Short: "Coffee House website server",
	Long: `coffee-house serves the Coffee House website: the menu, gallery and
blog pages with filtering and search, the contact, reservation and newsletter
forms, and a small JSON API over the same content.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		return config.Init(v, cfgFile)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("content.dir", "", "read content from this directory instead of the embedded datasets")
}

// contentSource is the configured content directory, or the embedded datasets.
func contentSource() fs.FS {
	if config.ContentDir != "" {
		return os.DirFS(config.ContentDir)
	}
	return content.Embedded()
}
