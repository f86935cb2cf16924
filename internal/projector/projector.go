// Package projector computes billing dates for leases.
package projector

import (
	"time"

	"github.com/jinzhu/now"
)

// LeaseTermYears is the fixed length of every lease.
const LeaseTermYears = 1

// NextPaymentDate returns the earliest monthly anniversary of leaseStart,
// leaseStart + k months for some k >= 0, that falls strictly after ref.
// A lease starting after ref has its first payment on its start date.
//
// Anniversaries are always computed from leaseStart, so a lease starting on
// the 31st bills on the last day of shorter months and returns to the 31st
// afterwards instead of drifting.
func NextPaymentDate(leaseStart, ref time.Time) time.Time {
	if leaseStart.After(ref) {
		return leaseStart
	}

	r := ref.In(leaseStart.Location())
	k := (r.Year()-leaseStart.Year())*12 + int(r.Month()-leaseStart.Month())
	if k < 0 {
		k = 0
	}
	for {
		next := AddMonths(leaseStart, k)
		if next.After(ref) {
			return next
		}
		k++
	}
}

// AddMonths adds k calendar months to t, clamping the day of month to the
// length of the target month. Time of day and location are preserved.
func AddMonths(t time.Time, k int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	first := time.Date(y, m+time.Month(k), 1, hh, mm, ss, t.Nanosecond(), t.Location())

	if last := now.With(first).EndOfMonth().Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

// LeaseTerm returns the end of a lease that starts at start.
func LeaseTerm(start time.Time) time.Time {
	return start.AddDate(LeaseTermYears, 0, 0)
}
