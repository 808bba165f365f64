package cmd

import (
	"quiqr-cms/pkg/config"
	"quiqr-cms/pkg/services"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the sites under the sites root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := services.ListProjects(cmd.Context(), config.SitesRoot)
		if err != nil {
			return err
		}
		return printJSON(cmd, projects)
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
