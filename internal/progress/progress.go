// Package progress holds the pure computations of the learning-path engine:
// progress percentages, sequential task unlocking, and quiz completion gating.
// Everything here is synchronous, allocation-light, and side-effect free apart
// from the explicit mutations ApplyTaskToggle and ApplyQuizReport perform on
// the aggregate passed in.
package progress

import (
	"math"

	"github.com/pathlight/pathlight-backend/internal/model"
)

// Percent returns round-half-up(100 * part / whole) clamped to [0,100].
// A zero or negative whole yields 0 — never a division error.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(part) / float64(whole)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// MilestoneProgress returns the percentage of completed tasks in a milestone.
// A milestone without tasks reports 0.
func MilestoneProgress(m *model.Milestone) int {
	done := 0
	for i := range m.Tasks {
		if m.Tasks[i].Completed {
			done++
		}
	}
	return Percent(done, len(m.Tasks))
}

// TaskWeightedProgress aggregates roadmap progress over individual tasks:
// round(100 * Σ completed tasks / Σ tasks). This is the basis used when a
// learner toggles tasks one by one.
func TaskWeightedProgress(r *model.Roadmap) int {
	done, total := 0, 0
	for i := range r.Milestones {
		for j := range r.Milestones[i].Tasks {
			total++
			if r.Milestones[i].Tasks[j].Completed {
				done++
			}
		}
	}
	return Percent(done, total)
}

// MilestoneWeightedProgress aggregates roadmap progress over whole milestones:
// round(100 * completed milestones / milestones). This is the basis used when
// progress is driven by quiz gating.
//
// The two formulas can disagree for the same roadmap state; task toggling and
// quiz gating use different bases on purpose, so both are kept as named
// operations rather than unified.
func MilestoneWeightedProgress(r *model.Roadmap) int {
	done := 0
	for i := range r.Milestones {
		if r.Milestones[i].Completed {
			done++
		}
	}
	return Percent(done, len(r.Milestones))
}
