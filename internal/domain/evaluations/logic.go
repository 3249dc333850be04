package evaluations

import "errors"

// ErrLocked is returned when a replace would overwrite a submitted manager
// evaluation. Submitted records only change through a new period.
var ErrLocked = errors.New("evaluation already submitted for this period")

var ErrNotFound = errors.New("evaluation not found")

// EntryStatus picks the status a freshly saved record gets. Self-assessments
// submit directly; manager direct entry starts as a draft and needs an
// explicit lock. Delegated completion bypasses this and submits at the task
// level.
func EntryStatus(selfEval bool) string {
	if selfEval {
		return StatusSubmitted
	}
	return StatusDraft
}

// CanReplace decides whether an existing record for the same key may be
// replaced. Self records carry no lock. Delegated completion overwrites a
// submitted record (first submit wins at the task level, see delegation).
func CanReplace(existingStatus string, selfEval, overwriteSubmitted bool) error {
	if selfEval || overwriteSubmitted {
		return nil
	}
	if existingStatus == StatusSubmitted {
		return ErrLocked
	}
	return nil
}
