package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iota-uz/iota-console/modules"
	"github.com/iota-uz/iota-console/pkg/application"
	"github.com/iota-uz/iota-console/pkg/configuration"
)

// NewUtilityCommands creates the maintenance commands shared by the CLIs.
func NewUtilityCommands() []*cobra.Command {
	return []*cobra.Command{
		newCheckTrKeysCmd(),
	}
}

func newCheckTrKeysCmd() *cobra.Command {
	var root string
	var languages []string

	cmd := &cobra.Command{
		Use:   "check_tr_keys",
		Short: "Check translation key consistency across all locales",
		Long:  `Validates that all translation keys, status labels and literal keys used in Go sources are present in every configured locale.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := configuration.Use().Logger()
			app := application.New(&application.ApplicationOptions{Logger: logger})
			if err := modules.Load(app, modules.BuiltInModules...); err != nil {
				return err
			}
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
				root = wd
			}
			missing, err := CheckLocales(app, root, languages, logger)
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				return fmt.Errorf("%d translation keys are missing in allowed locales", len(missing))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "source tree to scan (defaults to the working directory)")
	cmd.Flags().StringSliceVar(&languages, "lang", nil, "locales to require (defaults to the supported languages)")
	return cmd
}
