package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Roadmap is a learner's personalized multi-week learning plan and the
// aggregate root of the progress engine. A freshly drafted roadmap has a zero
// ID; the store assigns one on first save. Career and Timeline are immutable
// after creation, TotalProgress is always derived and never set by a client.
type Roadmap struct {
	ID            uuid.UUID   `json:"id,omitempty"`
	OwnerID       int         `json:"owner_id"`
	Career        string      `json:"career"`
	Timeline      string      `json:"timeline"`
	TotalProgress int         `json:"total_progress"`
	Milestones    []Milestone `json:"milestones"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// IsDraft reports whether the roadmap has not been persisted yet.
func (r *Roadmap) IsDraft() bool {
	return r.ID == uuid.Nil
}

// MilestoneByID returns the milestone with the given id, or nil.
func (r *Roadmap) MilestoneByID(id uuid.UUID) *Milestone {
	for i := range r.Milestones {
		if r.Milestones[i].ID == id {
			return &r.Milestones[i]
		}
	}
	return nil
}

// Milestone is one week of a roadmap: an ordered task list plus the
// append-only history of quiz attempts against it.
type Milestone struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Week        int          `json:"week"`
	Completed   bool         `json:"completed"`
	Tasks       []Task       `json:"tasks"`
	QuizReports []QuizReport `json:"quiz_reports"`
}

// TaskByID returns the task with the given id, or nil.
func (m *Milestone) TaskByID(id uuid.UUID) *Task {
	for i := range m.Tasks {
		if m.Tasks[i].ID == id {
			return &m.Tasks[i]
		}
	}
	return nil
}

// Task is a single actionable learning step. The content fields are opaque
// strings supplied by the content producer and never interpreted here.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Completed   bool      `json:"completed"`
	Explanation string    `json:"explanation"`
	CodeSnippet string    `json:"code_snippet"`
	VideoQuery  string    `json:"video_query"`
	Exercise    string    `json:"exercise"`
}

// ─── Request payloads ────────────────────────────────────────────────────────

// GenerateRoadmapRequest is the payload for drafting a new roadmap.
type GenerateRoadmapRequest struct {
	Career string `json:"career" binding:"required,min=2,max=120"`
	Weeks  int    `json:"weeks" binding:"required,min=1,max=52"`
}

// ToggleTaskRequest is the payload for marking a task (in)complete.
// Completed is a pointer so that an explicit false survives binding.
type ToggleTaskRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// GenerateQuizRequest is the payload for requesting quiz questions.
type GenerateQuizRequest struct {
	QuestionCount int `json:"question_count" binding:"omitempty,min=1,max=20"`
}

// ValidateDraft checks that a client-submitted draft is saveable: it has not
// been persisted before, carries a career and at least one milestone, and
// every milestone/task arrives with the id assigned at draft time.
func (r *Roadmap) ValidateDraft() error {
	if !r.IsDraft() {
		return errors.New("roadmap has already been saved")
	}
	if r.Career == "" {
		return errors.New("draft has no career")
	}
	if len(r.Milestones) == 0 {
		return errors.New("draft has no milestones")
	}
	for i := range r.Milestones {
		m := &r.Milestones[i]
		if m.ID == uuid.Nil || m.Title == "" {
			return fmt.Errorf("milestone %d is missing its id or title", i+1)
		}
		if len(m.Tasks) == 0 {
			return fmt.Errorf("milestone %d has no tasks", i+1)
		}
		for j := range m.Tasks {
			if m.Tasks[j].ID == uuid.Nil || m.Tasks[j].Title == "" {
				return fmt.Errorf("milestone %d task %d is missing its id or title", i+1, j+1)
			}
		}
	}
	return nil
}
