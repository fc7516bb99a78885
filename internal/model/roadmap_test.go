package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftRoadmap() *Roadmap {
	return &Roadmap{
		Career:   "Go Backend Developer",
		Timeline: "2 weeks",
		Milestones: []Milestone{
			{ID: uuid.New(), Title: "Week 1", Tasks: []Task{{ID: uuid.New(), Title: "Task"}}},
			{ID: uuid.New(), Title: "Week 2", Tasks: []Task{{ID: uuid.New(), Title: "Task"}}},
		},
	}
}

func TestValidateDraft(t *testing.T) {
	assert.NoError(t, draftRoadmap().ValidateDraft())

	saved := draftRoadmap()
	saved.ID = uuid.New()
	assert.Error(t, saved.ValidateDraft(), "already persisted")

	noCareer := draftRoadmap()
	noCareer.Career = ""
	assert.Error(t, noCareer.ValidateDraft())

	noMilestones := draftRoadmap()
	noMilestones.Milestones = nil
	assert.Error(t, noMilestones.ValidateDraft())

	nilMilestoneID := draftRoadmap()
	nilMilestoneID.Milestones[0].ID = uuid.Nil
	assert.Error(t, nilMilestoneID.ValidateDraft())

	noTasks := draftRoadmap()
	noTasks.Milestones[1].Tasks = nil
	assert.Error(t, noTasks.ValidateDraft())

	nilTaskID := draftRoadmap()
	nilTaskID.Milestones[0].Tasks[0].ID = uuid.Nil
	assert.Error(t, nilTaskID.ValidateDraft())
}

func TestLookups(t *testing.T) {
	rm := draftRoadmap()

	m := rm.MilestoneByID(rm.Milestones[1].ID)
	require.NotNil(t, m)
	assert.Equal(t, "Week 2", m.Title)
	assert.Nil(t, rm.MilestoneByID(uuid.New()))

	task := m.TaskByID(m.Tasks[0].ID)
	require.NotNil(t, task)
	assert.Nil(t, m.TaskByID(uuid.New()))
}

func TestSnapshotOf(t *testing.T) {
	rm := draftRoadmap()
	rm.ID = uuid.New()
	rm.OwnerID = 7
	rm.TotalProgress = 50
	rm.Milestones[0].Completed = true
	rm.Milestones[0].Tasks[0].Completed = true

	snap := SnapshotOf(rm)
	assert.Equal(t, rm.ID, snap.RoadmapID)
	assert.Equal(t, 7, snap.OwnerID)
	assert.Equal(t, 50, snap.TotalProgress)
	require.Len(t, snap.Milestones, 2)
	assert.True(t, snap.Milestones[0].Completed)
	assert.True(t, snap.Milestones[0].Tasks[0].Completed)
	assert.False(t, snap.Milestones[1].Completed)
}
