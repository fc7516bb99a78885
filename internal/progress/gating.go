package progress

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pathlight/pathlight-backend/internal/model"
)

// PassThreshold is the inclusive quiz percentage required to complete a
// milestone through gating.
const PassThreshold = 60

// Engine input errors. These fire before any state is touched; edge cases
// like empty collections or zero denominators are handled with zero values
// instead.
var (
	ErrEmptyQuiz         = errors.New("quiz report total must be greater than zero")
	ErrNegativeScore     = errors.New("quiz report score must not be negative")
	ErrScoreAboveTotal   = errors.New("quiz report score exceeds total")
	ErrMilestoneNotFound = errors.New("milestone not found in roadmap")
	ErrTaskNotFound      = errors.New("task not found in milestone")
)

// ApplyTaskToggle sets the completion state of one task and recomputes the
// roadmap's derived progress on the task-weighted basis. Milestone completion
// is sticky: it is set once all tasks are complete and never cleared by
// un-toggling, matching the gating rule that a milestone never un-completes.
func ApplyTaskToggle(r *model.Roadmap, milestoneID, taskID uuid.UUID, completed bool) error {
	m := r.MilestoneByID(milestoneID)
	if m == nil {
		return ErrMilestoneNotFound
	}
	t := m.TaskByID(taskID)
	if t == nil {
		return ErrTaskNotFound
	}

	t.Completed = completed

	allDone := len(m.Tasks) > 0
	for i := range m.Tasks {
		if !m.Tasks[i].Completed {
			allDone = false
			break
		}
	}
	if allDone {
		m.Completed = true
	}

	r.TotalProgress = TaskWeightedProgress(r)
	return nil
}

// ApplyQuizReport appends a quiz attempt to a milestone's history and applies
// the completion gate. A passing score (>= PassThreshold percent) completes
// the milestone and all of its tasks — a quiz pass is treated as mastery
// evidence superseding granular task tracking. A failing score leaves
// completion state untouched. The roadmap's derived progress is recomputed on
// the milestone-weighted basis either way.
//
// Invalid input (total <= 0, negative score, score > total, unknown milestone)
// returns an error with no state change; history is never overwritten.
func ApplyQuizReport(r *model.Roadmap, milestoneID uuid.UUID, report *model.QuizReport) (passed bool, err error) {
	if report.Total <= 0 {
		return false, ErrEmptyQuiz
	}
	if report.Score < 0 {
		return false, ErrNegativeScore
	}
	if report.Score > report.Total {
		return false, ErrScoreAboveTotal
	}

	m := r.MilestoneByID(milestoneID)
	if m == nil {
		return false, ErrMilestoneNotFound
	}

	if report.TakenAt.IsZero() {
		report.TakenAt = time.Now().UTC()
	}
	report.MilestoneID = m.ID
	m.QuizReports = append(m.QuizReports, *report)

	passed = Percent(report.Score, report.Total) >= PassThreshold
	if passed {
		m.Completed = true
		for i := range m.Tasks {
			m.Tasks[i].Completed = true
		}
	}

	r.TotalProgress = MilestoneWeightedProgress(r)
	return passed, nil
}
