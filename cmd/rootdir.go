package cmd

import (
	"fmt"

	"rhq/internal/config"

	"github.com/spf13/cobra"
)

var rootDirCmd = &cobra.Command{
	Use:   "root",
	Short: "Show the root directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.Root)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rootDirCmd)
}
