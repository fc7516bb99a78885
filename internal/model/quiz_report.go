package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizReport is the immutable record of one quiz attempt against a milestone.
// Reports are append-only: a retake produces a new report, never an update.
type QuizReport struct {
	ID          uuid.UUID `json:"id"`
	MilestoneID uuid.UUID `json:"milestone_id"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	StrongAreas []string  `json:"strong_areas"`
	WeakAreas   []string  `json:"weak_areas"`
	Summary     string    `json:"summary"`
	TakenAt     time.Time `json:"taken_at"`
}

// SubmitQuizReportRequest is the payload for recording a quiz attempt.
// Score is a pointer so an explicit zero survives binding.
type SubmitQuizReportRequest struct {
	Score       *int     `json:"score" binding:"required,min=0"`
	Total       int      `json:"total" binding:"required,min=1"`
	StrongAreas []string `json:"strong_areas"`
	WeakAreas   []string `json:"weak_areas"`
	Summary     string   `json:"summary"`
}

// QuizSubmissionResult is what the store returns after the authoritative
// server-side gating pass (the client-side computation mirrors it exactly).
type QuizSubmissionResult struct {
	Report             *QuizReport `json:"report"`
	Passed             bool        `json:"passed"`
	Percentage         int         `json:"percentage"`
	MilestoneCompleted bool        `json:"milestone_completed"`
	NewTotalProgress   int         `json:"new_total_progress"`
}
