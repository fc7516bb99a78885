package progress

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func newMilestone(taskStates ...bool) model.Milestone {
	m := model.Milestone{ID: uuid.New()}
	for _, done := range taskStates {
		m.Tasks = append(m.Tasks, model.Task{ID: uuid.New(), Completed: done})
	}
	return m
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		part  int
		whole int
		want  int
	}{
		{"zero whole", 3, 0, 0},
		{"negative whole", 3, -1, 0},
		{"zero part", 0, 10, 0},
		{"full", 10, 10, 100},
		{"rounds half up", 1, 8, 13},   // 12.5
		{"rounds down", 1, 3, 33},      // 33.33
		{"rounds up", 2, 3, 67},        // 66.67
		{"clamps above", 15, 10, 100},  // part > whole
		{"clamps below zero", -3, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.part, tt.whole))
		})
	}
}

func TestMilestoneProgress(t *testing.T) {
	empty := newMilestone()
	assert.Equal(t, 0, MilestoneProgress(&empty))

	half := newMilestone(true, false)
	assert.Equal(t, 50, MilestoneProgress(&half))

	twoOfThree := newMilestone(true, true, false)
	assert.Equal(t, 67, MilestoneProgress(&twoOfThree))
}

func TestTaskWeightedProgress(t *testing.T) {
	rm := &model.Roadmap{Milestones: []model.Milestone{
		newMilestone(true, true),        // 2 done
		newMilestone(false, false, false), // 0 done
	}}
	// 2 of 5 tasks → 40.
	assert.Equal(t, 40, TaskWeightedProgress(rm))

	noTasks := &model.Roadmap{Milestones: []model.Milestone{{ID: uuid.New()}}}
	assert.Equal(t, 0, TaskWeightedProgress(noTasks))
}

func TestMilestoneWeightedProgress(t *testing.T) {
	rm := &model.Roadmap{Milestones: []model.Milestone{
		{ID: uuid.New(), Completed: true},
		{ID: uuid.New()},
		{ID: uuid.New()},
	}}
	assert.Equal(t, 33, MilestoneWeightedProgress(rm))

	empty := &model.Roadmap{}
	assert.Equal(t, 0, MilestoneWeightedProgress(empty))
}

// The two bases intentionally disagree for the same state: a roadmap with one
// fully-done small milestone and one untouched large one.
func TestProgressBasesDiverge(t *testing.T) {
	done := newMilestone(true)
	done.Completed = true
	rm := &model.Roadmap{Milestones: []model.Milestone{
		done,
		newMilestone(false, false, false, false, false),
	}}

	assert.Equal(t, 17, TaskWeightedProgress(rm))      // 1 of 6 tasks
	assert.Equal(t, 50, MilestoneWeightedProgress(rm)) // 1 of 2 milestones
}

func TestIsUnlocked(t *testing.T) {
	m := newMilestone(false, false, false)

	assert.True(t, IsUnlocked(&m, 0), "first task is always unlocked")
	assert.False(t, IsUnlocked(&m, 1))
	assert.False(t, IsUnlocked(&m, 2))
	assert.False(t, IsUnlocked(&m, -1))
	assert.False(t, IsUnlocked(&m, 3))

	m.Tasks[0].Completed = true
	assert.True(t, IsUnlocked(&m, 1), "completing the predecessor unlocks the next task")
	assert.False(t, IsUnlocked(&m, 2))
}

func TestIsUnlockedNeverRelocks(t *testing.T) {
	// Task 1 was completed while unlocked; un-toggling task 0 afterwards must
	// not lock task 1 again.
	m := newMilestone(false, true, false)
	assert.True(t, IsUnlocked(&m, 1))
	assert.True(t, IsUnlocked(&m, 2), "completed predecessor unlocks the successor")
}

func TestUnlockStates(t *testing.T) {
	// The task after the first incomplete one stays locked: its predecessor is
	// not done and it is not completed itself.
	m := newMilestone(true, true, false, false)
	assert.Equal(t, []bool{true, true, true, false}, UnlockStates(&m))

	fresh := newMilestone(false, false)
	assert.Equal(t, []bool{true, false}, UnlockStates(&fresh))

	empty := newMilestone()
	assert.Empty(t, UnlockStates(&empty))
}

func TestUnlockStatesIdempotent(t *testing.T) {
	m := newMilestone(true, false, true)
	first := UnlockStates(&m)
	second := UnlockStates(&m)
	assert.Equal(t, first, second)
}
