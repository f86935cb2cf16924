package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rental-marketplace/internal/store/migrate"
)

func MigrateCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		UpCmd(rt),
		DownCmd(rt),
		StatusCmd(rt),
		HistoryCmd(rt),
		CheckCmd(rt),
	)
	return cmd
}

func migrator(rt *Runtime) (*migrate.Migrator, error) {
	db, err := rt.DB()
	if err != nil {
		return nil, err
	}
	return migrate.NewMigrator(db), nil
}

func UpCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			out := cmd.OutOrStdout()

			m, err := migrator(rt)
			if err != nil {
				return err
			}

			pending, err := m.Pending(cmd.Context())
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Fprintln(out, "No pending migrations.")
				return nil
			}

			if dryRun {
				fmt.Fprintln(out, "Pending migrations:")
				for _, mig := range pending {
					fmt.Fprintf(out, "- %s (%s)\n", mig.Name, mig.Version)
				}
				return nil
			}

			applied, err := m.Up(cmd.Context())
			for _, mig := range applied {
				fmt.Fprintf(out, "Successfully applied migration: %s\n", mig.Name)
			}
			return err
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show pending migrations without executing them")

	return cmd
}

func DownCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Revert the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrator(rt)
			if err != nil {
				return err
			}

			reverted, err := m.Down(cmd.Context())
			if err != nil {
				return err
			}
			if reverted == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No migrations to revert.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully reverted migration: %s\n", reverted.Name)
			return nil
		},
	}
}

func StatusCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrator(rt)
			if err != nil {
				return err
			}

			statuses, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-16s  %-30s  %-8s\n", "Version", "Name", "Status")
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Fprintf(out, "%-16s  %-30s  %-8s\n", s.Version, s.Name, state)
			}
			return nil
		},
	}
}

func HistoryCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show migration history",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrator(rt)
			if err != nil {
				return err
			}

			records, err := m.History(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No migrations have been applied yet.")
				return nil
			}

			fmt.Fprintf(out, "%-16s  %-30s  %-24s\n", "Version", "Name", "Applied At")
			for _, record := range records {
				fmt.Fprintf(out, "%-16s  %-30s  %-24s\n", record.Version, record.Name, record.AppliedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func CheckCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Compare the models with the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrator(rt)
			if err != nil {
				return err
			}

			drift, err := m.Drift(cmd.Context())
			if err != nil {
				return err
			}
			if len(drift) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date with the models.")
				return nil
			}
			for _, d := range drift {
				fmt.Fprintln(cmd.OutOrStdout(), d.String())
			}
			return fmt.Errorf("schema drift: %d difference(s), run migrate up", len(drift))
		},
	}
}
