package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoadmap(milestones ...model.Milestone) *model.Roadmap {
	return &model.Roadmap{ID: uuid.New(), OwnerID: 1, Milestones: milestones}
}

func TestApplyTaskToggle(t *testing.T) {
	m := newMilestone(false, false, false)
	rm := newRoadmap(m)

	err := ApplyTaskToggle(rm, m.ID, m.Tasks[0].ID, true)
	require.NoError(t, err)
	assert.True(t, rm.Milestones[0].Tasks[0].Completed)
	assert.Equal(t, 33, rm.TotalProgress)
	assert.False(t, rm.Milestones[0].Completed)

	err = ApplyTaskToggle(rm, m.ID, m.Tasks[1].ID, true)
	require.NoError(t, err)
	assert.Equal(t, 67, rm.TotalProgress)
}

func TestApplyTaskToggleCompletesMilestone(t *testing.T) {
	m := newMilestone(true, false)
	rm := newRoadmap(m)

	err := ApplyTaskToggle(rm, m.ID, m.Tasks[1].ID, true)
	require.NoError(t, err)
	assert.True(t, rm.Milestones[0].Completed)
	assert.Equal(t, 100, rm.TotalProgress)
}

func TestApplyTaskToggleMilestoneCompletionIsSticky(t *testing.T) {
	m := newMilestone(true, true)
	m.Completed = true
	rm := newRoadmap(m)

	err := ApplyTaskToggle(rm, m.ID, m.Tasks[0].ID, false)
	require.NoError(t, err)
	assert.False(t, rm.Milestones[0].Tasks[0].Completed)
	assert.True(t, rm.Milestones[0].Completed, "un-toggling a task never un-completes the milestone")
	assert.Equal(t, 50, rm.TotalProgress)
}

func TestApplyTaskToggleUnknownIDs(t *testing.T) {
	m := newMilestone(false)
	rm := newRoadmap(m)

	err := ApplyTaskToggle(rm, uuid.New(), m.Tasks[0].ID, true)
	assert.ErrorIs(t, err, ErrMilestoneNotFound)

	err = ApplyTaskToggle(rm, m.ID, uuid.New(), true)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, 0, rm.TotalProgress, "failed toggle must not change state")
}

func TestApplyQuizReportPass(t *testing.T) {
	m := newMilestone(false, false)
	rm := newRoadmap(m, newMilestone(false))

	passed, err := ApplyQuizReport(rm, m.ID, &model.QuizReport{Score: 4, Total: 5})
	require.NoError(t, err)
	assert.True(t, passed)

	got := &rm.Milestones[0]
	assert.True(t, got.Completed)
	for i := range got.Tasks {
		assert.True(t, got.Tasks[i].Completed, "a pass completes every task")
	}
	assert.Len(t, got.QuizReports, 1)
	assert.Equal(t, 50, rm.TotalProgress, "milestone-weighted: 1 of 2")
}

func TestApplyQuizReportExactThresholdPasses(t *testing.T) {
	m := newMilestone(false)
	rm := newRoadmap(m)

	passed, err := ApplyQuizReport(rm, m.ID, &model.QuizReport{Score: 3, Total: 5})
	require.NoError(t, err)
	assert.True(t, passed, "60% is inclusive")
}

func TestApplyQuizReportFail(t *testing.T) {
	m := newMilestone(true, false)
	rm := newRoadmap(m)

	passed, err := ApplyQuizReport(rm, m.ID, &model.QuizReport{Score: 2, Total: 5})
	require.NoError(t, err)
	assert.False(t, passed)

	got := &rm.Milestones[0]
	assert.False(t, got.Completed, "a fail changes no completion state")
	assert.True(t, got.Tasks[0].Completed)
	assert.False(t, got.Tasks[1].Completed)
	assert.Len(t, got.QuizReports, 1, "failed attempts are still recorded")
}

func TestApplyQuizReportHistoryIsAppendOnly(t *testing.T) {
	m := newMilestone(false)
	rm := newRoadmap(m)

	_, err := ApplyQuizReport(rm, m.ID, &model.QuizReport{Score: 1, Total: 5})
	require.NoError(t, err)
	_, err = ApplyQuizReport(rm, m.ID, &model.QuizReport{Score: 5, Total: 5})
	require.NoError(t, err)

	reports := rm.Milestones[0].QuizReports
	require.Len(t, reports, 2)
	assert.Equal(t, 1, reports[0].Score)
	assert.Equal(t, 5, reports[1].Score)
}

func TestApplyQuizReportSetsTakenAt(t *testing.T) {
	m := newMilestone(false)
	rm := newRoadmap(m)

	_, err := ApplyQuizReport(rm, m.ID, &model.QuizReport{Score: 3, Total: 5})
	require.NoError(t, err)
	assert.False(t, rm.Milestones[0].QuizReports[0].TakenAt.IsZero())

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err = ApplyQuizReport(rm, m.ID, &model.QuizReport{Score: 3, Total: 5, TakenAt: fixed})
	require.NoError(t, err)
	assert.Equal(t, fixed, rm.Milestones[0].QuizReports[1].TakenAt)
}

func TestApplyQuizReportInvalidInput(t *testing.T) {
	m := newMilestone(false)
	rm := newRoadmap(m)

	tests := []struct {
		name   string
		report model.QuizReport
		want   error
	}{
		{"empty quiz", model.QuizReport{Score: 0, Total: 0}, ErrEmptyQuiz},
		{"negative total", model.QuizReport{Score: 0, Total: -2}, ErrEmptyQuiz},
		{"negative score", model.QuizReport{Score: -1, Total: 5}, ErrNegativeScore},
		{"score above total", model.QuizReport{Score: 6, Total: 5}, ErrScoreAboveTotal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := tt.report
			passed, err := ApplyQuizReport(rm, m.ID, &report)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, passed)
		})
	}

	_, err := ApplyQuizReport(rm, uuid.New(), &model.QuizReport{Score: 3, Total: 5})
	assert.ErrorIs(t, err, ErrMilestoneNotFound)

	assert.Empty(t, rm.Milestones[0].QuizReports, "invalid input never touches history")
	assert.Equal(t, 0, rm.TotalProgress)
}

// End-to-end engine scenario over a 3-milestone roadmap: quiz passes move the
// milestone-weighted total from 0 to 33 to 67.
func TestGatingScenario(t *testing.T) {
	rm := newRoadmap(
		newMilestone(false, false),
		newMilestone(false, false),
		newMilestone(false, false),
	)

	passed, err := ApplyQuizReport(rm, rm.Milestones[0].ID, &model.QuizReport{Score: 4, Total: 5})
	require.NoError(t, err)
	require.True(t, passed)
	assert.Equal(t, 33, rm.TotalProgress)

	passed, err = ApplyQuizReport(rm, rm.Milestones[1].ID, &model.QuizReport{Score: 2, Total: 5})
	require.NoError(t, err)
	require.False(t, passed)
	assert.Equal(t, 33, rm.TotalProgress, "a fail leaves progress untouched")

	passed, err = ApplyQuizReport(rm, rm.Milestones[1].ID, &model.QuizReport{Score: 3, Total: 5})
	require.NoError(t, err)
	require.True(t, passed)
	assert.Equal(t, 67, rm.TotalProgress)
}
