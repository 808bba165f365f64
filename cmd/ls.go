package cmd

import (
	"quiqr-cms/pkg/services"

	"github.com/spf13/cobra"
)

var lsRecursive bool

var lsCmd = &cobra.Command{
	Use:   "ls <path>",
	Short: "List a directory the way the editor sees it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := services.ListDirectory(args[0], lsRecursive)
		if err != nil {
			return err
		}
		return printJSON(cmd, entries)
	},
}

func init() {
	lsCmd.Flags().BoolVarP(&lsRecursive, "recursive", "r", false, "descend into sub-directories")
	rootCmd.AddCommand(lsCmd)
}
