package progress

import "github.com/pathlight/pathlight-backend/internal/model"

// IsUnlocked reports whether the task at index i of a milestone is accessible.
// Task 0 is always unlocked. A later task unlocks once its predecessor is
// completed — or once it is completed itself, so a finished task can never
// re-lock against a stale predecessor state. Out-of-range indexes are locked.
func IsUnlocked(m *model.Milestone, i int) bool {
	if i < 0 || i >= len(m.Tasks) {
		return false
	}
	if i == 0 {
		return true
	}
	return m.Tasks[i].Completed || m.Tasks[i-1].Completed
}

// UnlockStates returns the unlock flag for every task in order. Recomputing
// after any mutation is idempotent and never shrinks the unlocked set.
func UnlockStates(m *model.Milestone) []bool {
	states := make([]bool, len(m.Tasks))
	for i := range m.Tasks {
		states[i] = IsUnlocked(m, i)
	}
	return states
}
