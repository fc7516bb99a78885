package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func generated(weeks int) []GeneratedMilestone {
	ms := make([]GeneratedMilestone, 0, weeks)
	for i := 0; i < weeks; i++ {
		ms = append(ms, GeneratedMilestone{
			Title: "Week",
			Tasks: []GeneratedTask{{Title: "Task"}},
		})
	}
	return ms
}

func TestValidateGeneratedMilestones(t *testing.T) {
	assert.NoError(t, ValidateGeneratedMilestones(generated(3), 3))

	assert.Error(t, ValidateGeneratedMilestones(generated(2), 3), "week count mismatch")
	assert.Error(t, ValidateGeneratedMilestones(nil, 1))

	missingTitle := generated(1)
	missingTitle[0].Title = ""
	assert.Error(t, ValidateGeneratedMilestones(missingTitle, 1))

	noTasks := generated(1)
	noTasks[0].Tasks = nil
	assert.Error(t, ValidateGeneratedMilestones(noTasks, 1))

	untitledTask := generated(1)
	untitledTask[0].Tasks[0].Title = ""
	assert.Error(t, ValidateGeneratedMilestones(untitledTask, 1))
}

func TestValidateQuizQuestions(t *testing.T) {
	good := []QuizQuestion{{
		Question:      "What does go vet do?",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "b",
	}}
	assert.NoError(t, ValidateQuizQuestions(good))

	assert.Error(t, ValidateQuizQuestions(nil), "empty quiz")

	threeOptions := []QuizQuestion{{Question: "q", Options: []string{"a", "b", "c"}, CorrectAnswer: "a"}}
	assert.Error(t, ValidateQuizQuestions(threeOptions))

	badAnswer := []QuizQuestion{{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "e"}}
	assert.Error(t, ValidateQuizQuestions(badAnswer))
}
