package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rental-marketplace/internal/seed"
)

func SeedCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo locations, managers, tenants and properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rt.DB()
			if err != nil {
				return err
			}

			data := seed.Demo()
			if err := seed.Apply(cmd.Context(), db, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d properties for %d managers and %d tenants.\n",
				len(data.Properties), len(data.Managers), len(data.Tenants))
			return nil
		},
	}
}
