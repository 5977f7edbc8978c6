package numbering

import (
	"time"

	"faktura/internal/core/id"
)

// pickPolicy selects the winner when several assignments match one scope.
type pickPolicy int

const (
	pickFirst pickPolicy = iota
	pickLast
)

// The two resolution paths deliberately disagree on which duplicate wins.
// The device path takes the LAST assignment in insertion order, the
// journal fallback the FIRST period/fiscal-year match. The asymmetry is
// inherited behavior; keep it behind these constants so a future
// unification is a one-line change with failing tests to update.
const (
	devicePolicy   = pickLast
	fallbackPolicy = pickFirst
)

// pick returns the winning assignment under the policy, or nil for an
// empty slice.
func pick(matched []*Assignment, policy pickPolicy) *Assignment {
	if len(matched) == 0 {
		return nil
	}
	if policy == pickLast {
		return matched[len(matched)-1]
	}
	return matched[0]
}

// resolveForDevice resolves the sequence for an invoice kind from the
// device-bound assignments. No date or period filtering applies on this
// path: any assignment of the issuing device wins, later entries
// overriding earlier ones.
//
// The caller guarantees assignments is non-empty; the selected
// assignment must serve the kind or the configuration is defective.
func resolveForDevice(assignments []*Assignment, kind Kind) (id.ID, error) {
	winner := pick(assignments, devicePolicy)
	return winner.Pair.SequenceFor(kind)
}

// resolveForJournal resolves the sequence for an invoice kind from a
// journal's assignments by date, in two passes:
//
//  1. period-scoped assignments whose period window covers the date;
//  2. fiscal-year-only assignments whose year window covers the date.
//
// Returns found=false when neither pass matches; the caller then defers
// to its superseding default numbering behavior.
func resolveForJournal(assignments []*Assignment, kind Kind, date time.Time) (id.ID, bool, error) {
	var periodMatched []*Assignment
	for _, a := range assignments {
		if a.PeriodCovers(date) {
			periodMatched = append(periodMatched, a)
		}
	}
	if winner := pick(periodMatched, fallbackPolicy); winner != nil {
		seqID, err := winner.Pair.SequenceFor(kind)
		if err != nil {
			return id.Nil(), false, err
		}
		return seqID, true, nil
	}

	var yearMatched []*Assignment
	for _, a := range assignments {
		if !a.HasPeriod() && a.FiscalYearCovers(date) {
			yearMatched = append(yearMatched, a)
		}
	}
	if winner := pick(yearMatched, fallbackPolicy); winner != nil {
		seqID, err := winner.Pair.SequenceFor(kind)
		if err != nil {
			return id.Nil(), false, err
		}
		return seqID, true, nil
	}

	return id.Nil(), false, nil
}
