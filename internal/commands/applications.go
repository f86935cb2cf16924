package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rental-marketplace/internal/apperr"
	"rental-marketplace/internal/identity"
	"rental-marketplace/internal/models"
)

func ApplicationsCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applications",
		Short: "Inspect and decide rental applications",
	}
	cmd.AddCommand(
		ListCmd(rt),
		SetStatusCmd(rt),
	)
	return cmd
}

func ListCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications visible to a tenant or manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user-id")
			role, _ := cmd.Flags().GetString("role")

			requester, err := identity.Parse(userID, role)
			if err != nil {
				return err
			}
			_, _, lister, err := rt.Services()
			if err != nil {
				return err
			}

			views, err := lister.ListApplications(cmd.Context(), requester)
			if err != nil {
				return err
			}
			return writeJSON(cmd, views)
		},
	}

	cmd.Flags().String("user-id", "", "Cognito id of the requester")
	cmd.Flags().String("role", "", "Requester role: tenant or manager")

	return cmd
}

func SetStatusCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status [id] [status]",
		Short: "Approve or deny an application",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			const op = "set application status"

			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return apperr.Validation(op, "application id must be a positive integer", err)
			}
			status, err := models.ParseApplicationStatus(args[1])
			if err != nil {
				return apperr.Validation(op, "unknown status", err)
			}

			_, writer, _, err := rt.Services()
			if err != nil {
				return err
			}
			app, err := writer.UpdateApplicationStatus(cmd.Context(), uint(id), status)
			if err != nil {
				return err
			}
			return writeJSON(cmd, app)
		},
	}
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
