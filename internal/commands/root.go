package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd assembles the full command tree.
func RootCmd(rt *Runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "rentals",
		Short:         "Rental applications and leases service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		ServeCmd(rt),
		MigrateCmd(rt),
		SeedCmd(rt),
		ApplicationsCmd(rt),
	)
	return root
}
