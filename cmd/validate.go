package cmd

import (
	"fmt"

	"quiqr-cms/pkg/models"
	"quiqr-cms/pkg/services"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <singles|collections|menu|site> <file>",
	Short: "Check a model file before saving it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		configType := models.ConfigType(args[0])
		if !configType.Valid() {
			return fmt.Errorf("unsupported config type: %s", args[0])
		}

		data, err := services.Load(args[1])
		if err != nil {
			return err
		}

		report := services.ValidateConfig(configType, data)
		if err := printJSON(cmd, report); err != nil {
			return err
		}
		if !report.Valid {
			return fmt.Errorf("%s: %d problems found", args[1], len(report.Errors))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
