package model

import "fmt"

// Shapes produced by the external content producer, pinned down at the
// interface boundary only. The engine trusts validated output and treats every
// content string as opaque; malformed output is an input-validation failure.

// GeneratedMilestone is one producer-drafted week of learning material.
type GeneratedMilestone struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Tasks       []GeneratedTask `json:"tasks"`
}

// GeneratedTask is one producer-drafted learning step.
type GeneratedTask struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	CodeSnippet string `json:"code_snippet"`
	VideoQuery  string `json:"video_query"`
	Exercise    string `json:"exercise"`
}

// QuizQuestion is a producer-generated multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// QuizAnalysis is the producer's qualitative verdict on a set of answers.
type QuizAnalysis struct {
	StrongAreas []string `json:"strong_areas"`
	WeakAreas   []string `json:"weak_areas"`
	Summary     string   `json:"summary"`
}

// AnalyzeQuizRequest is the payload for requesting a qualitative verdict on a
// finished quiz. Answers are positional against Questions.
type AnalyzeQuizRequest struct {
	Questions []QuizQuestion `json:"questions" binding:"required,min=1"`
	Answers   []string       `json:"answers" binding:"required"`
}

// ValidateGeneratedMilestones checks the producer output shape for a roadmap
// draft: the milestone count must match the requested week count and every
// milestone needs a title and at least one titled task.
func ValidateGeneratedMilestones(ms []GeneratedMilestone, wantWeeks int) error {
	if len(ms) != wantWeeks {
		return fmt.Errorf("content producer returned %d milestones, expected %d", len(ms), wantWeeks)
	}
	for i, m := range ms {
		if m.Title == "" {
			return fmt.Errorf("milestone %d: missing title", i+1)
		}
		if len(m.Tasks) == 0 {
			return fmt.Errorf("milestone %d (%s): no tasks", i+1, m.Title)
		}
		for j, t := range m.Tasks {
			if t.Title == "" {
				return fmt.Errorf("milestone %d (%s): task %d missing title", i+1, m.Title, j+1)
			}
		}
	}
	return nil
}

// ValidateQuizQuestions checks the producer output shape for a quiz: each
// question carries exactly four options, one of which is the correct answer.
func ValidateQuizQuestions(qs []QuizQuestion) error {
	if len(qs) == 0 {
		return fmt.Errorf("content producer returned no questions")
	}
	for i, q := range qs {
		if q.Question == "" {
			return fmt.Errorf("question %d: missing text", i+1)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("question %d: correct answer not among options", i+1)
		}
	}
	return nil
}
