package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rental-marketplace/internal/apperr"
	"rental-marketplace/internal/models"
)

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		from, to models.ApplicationStatus
		want     error
	}{
		{models.StatusPending, models.StatusApproved, nil},
		{models.StatusPending, models.StatusDenied, nil},
		{models.StatusPending, models.StatusPending, apperr.ErrValidation},
		{models.StatusApproved, models.StatusDenied, apperr.ErrInvalidTransition},
		{models.StatusApproved, models.StatusApproved, apperr.ErrInvalidTransition},
		{models.StatusDenied, models.StatusApproved, apperr.ErrInvalidTransition},
		{models.StatusDenied, models.StatusPending, apperr.ErrValidation},
		{models.StatusPending, "Archived", apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := CheckTransition(7, tt.from, tt.to)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInvalidTransitionMessage(t *testing.T) {
	err := CheckTransition(7, models.StatusDenied, models.StatusApproved)
	assert.Contains(t, err.Error(), "application 7 cannot move from Denied to Approved")
}
