package model

import "github.com/google/uuid"

// RoadmapSnapshot is the mutable state of a roadmap as shipped through the
// persist queue: derived progress plus every completion flag. Structure
// (milestone/task order, content, quiz history) is immutable after creation
// and quiz reports are appended in their own transaction, so a snapshot is
// all a full-document overwrite needs. Whole snapshots are applied
// last-write-wins; there is no merge.
type RoadmapSnapshot struct {
	RoadmapID     uuid.UUID           `json:"roadmap_id"`
	OwnerID       int                 `json:"owner_id"`
	TotalProgress int                 `json:"total_progress"`
	Milestones    []MilestoneSnapshot `json:"milestones"`
}

// MilestoneSnapshot carries one milestone's completion flags.
type MilestoneSnapshot struct {
	ID        uuid.UUID      `json:"id"`
	Completed bool           `json:"completed"`
	Tasks     []TaskSnapshot `json:"tasks"`
}

// TaskSnapshot carries one task's completion flag.
type TaskSnapshot struct {
	ID        uuid.UUID `json:"id"`
	Completed bool      `json:"completed"`
}

// SnapshotOf extracts the persistable mutable state from a roadmap.
func SnapshotOf(r *Roadmap) *RoadmapSnapshot {
	snap := &RoadmapSnapshot{
		RoadmapID:     r.ID,
		OwnerID:       r.OwnerID,
		TotalProgress: r.TotalProgress,
		Milestones:    make([]MilestoneSnapshot, 0, len(r.Milestones)),
	}
	for i := range r.Milestones {
		m := &r.Milestones[i]
		ms := MilestoneSnapshot{
			ID:        m.ID,
			Completed: m.Completed,
			Tasks:     make([]TaskSnapshot, 0, len(m.Tasks)),
		}
		for j := range m.Tasks {
			ms.Tasks = append(ms.Tasks, TaskSnapshot{
				ID:        m.Tasks[j].ID,
				Completed: m.Tasks[j].Completed,
			})
		}
		snap.Milestones = append(snap.Milestones, ms)
	}
	return snap
}
