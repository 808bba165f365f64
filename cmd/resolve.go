package cmd

import (
	"fmt"

	"quiqr-cms/pkg/config"
	"quiqr-cms/pkg/services"

	"github.com/spf13/cobra"
)

var resolveStrict bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <project>",
	Short: "Resolve a site model and check its menu",
	Long: `The resolve command loads the site config, menu, singles and collections of
a project, merges partials, and prints the validated model as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := services.ResolveProject(cmd.Context(), config.SitesRoot, args[0])
		if err != nil {
			return err
		}
		if err := printJSON(cmd, project); err != nil {
			return err
		}
		if resolveStrict && !project.IsValid {
			return fmt.Errorf("project %s has %d unresolved menu items", args[0], len(project.Errors))
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveStrict, "strict", false, "exit non-zero when menu items do not resolve")
	rootCmd.AddCommand(resolveCmd)
}
