package lifecycle

import (
	"rental-marketplace/internal/apperr"
	"rental-marketplace/internal/models"
)

// CheckTransition reports whether an application may move from one status
// to another. Only Pending applications can be decided; Approved and Denied
// are final.
func CheckTransition(id uint, from, to models.ApplicationStatus) error {
	const op = "update application status"

	if _, err := models.ParseApplicationStatus(string(to)); err != nil {
		return apperr.Validation(op, "unknown status", err)
	}
	if to == models.StatusPending {
		return apperr.Validation(op, "an application cannot be moved back to Pending", nil)
	}
	if from != models.StatusPending {
		return apperr.InvalidTransition(op, id, string(from), string(to))
	}
	return nil
}
