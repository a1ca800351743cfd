package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"quizzical-service/internal/config"
)

// newCategoriesCmd lists the provider's category catalog.
func newCategoriesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List available trivia categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			comps := buildComponents(cfg)
			defer comps.cleanup()

			categories, err := comps.service.GetCategories(cmd.Context())
			if err != nil {
				return err
			}
			for _, category := range categories {
				fmt.Printf("%3d  %s\n", category.ID, category.Name)
			}
			return nil
		},
	}
}
