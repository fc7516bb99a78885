package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProducer struct {
	milestones []model.GeneratedMilestone
	questions  []model.QuizQuestion
	analysis   *model.QuizAnalysis
	err        error
}

func (s *stubProducer) GenerateRoadmap(context.Context, string, int) ([]model.GeneratedMilestone, error) {
	return s.milestones, s.err
}

func (s *stubProducer) GenerateQuiz(context.Context, string, []string, int) ([]model.QuizQuestion, error) {
	return s.questions, s.err
}

func (s *stubProducer) AnalyzeQuiz(context.Context, string, []model.QuizQuestion, []string) (*model.QuizAnalysis, error) {
	return s.analysis, s.err
}

func TestDraftRoadmap(t *testing.T) {
	producer := &stubProducer{milestones: []model.GeneratedMilestone{
		{Title: "Week 1", Description: "Basics", Tasks: []model.GeneratedTask{{Title: "Install Go"}, {Title: "Hello world"}}},
		{Title: "Week 2", Tasks: []model.GeneratedTask{{Title: "Slices"}}},
	}}
	svc := NewContentService(producer, zerolog.Nop())

	draft, err := svc.DraftRoadmap(context.Background(), 42, &model.GenerateRoadmapRequest{Career: "Go Backend Developer", Weeks: 2})
	require.NoError(t, err)

	assert.True(t, draft.IsDraft())
	assert.Equal(t, 42, draft.OwnerID)
	assert.Equal(t, "2 weeks", draft.Timeline)
	require.Len(t, draft.Milestones, 2)

	m := draft.Milestones[0]
	assert.NotEqual(t, uuid.Nil, m.ID, "draft milestones get addressable ids")
	assert.Equal(t, 1, m.Week)
	require.Len(t, m.Tasks, 2)
	assert.NotEqual(t, uuid.Nil, m.Tasks[0].ID)
	assert.False(t, m.Completed)
	assert.Empty(t, m.QuizReports)
	assert.Equal(t, 2, draft.Milestones[1].Week)
}

func TestDraftRoadmapMalformedOutput(t *testing.T) {
	// Producer returns one milestone for a two-week request.
	producer := &stubProducer{milestones: []model.GeneratedMilestone{
		{Title: "Week 1", Tasks: []model.GeneratedTask{{Title: "Task"}}},
	}}
	svc := NewContentService(producer, zerolog.Nop())

	_, err := svc.DraftRoadmap(context.Background(), 1, &model.GenerateRoadmapRequest{Career: "DevOps", Weeks: 2})
	assert.ErrorIs(t, err, ErrMalformedContent)
}

func TestDraftRoadmapProducerError(t *testing.T) {
	producer := &stubProducer{err: assert.AnError}
	svc := NewContentService(producer, zerolog.Nop())

	_, err := svc.DraftRoadmap(context.Background(), 1, &model.GenerateRoadmapRequest{Career: "DevOps", Weeks: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedContent, "transport errors are not malformed-content errors")
}

func TestQuizForMilestone(t *testing.T) {
	producer := &stubProducer{questions: []model.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
	}}
	svc := NewContentService(producer, zerolog.Nop())

	m := &model.Milestone{Title: "Concurrency", Tasks: []model.Task{{Title: "Goroutines"}}}
	questions, err := svc.QuizForMilestone(context.Background(), m, 0)
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestQuizForMilestoneMalformed(t *testing.T) {
	producer := &stubProducer{questions: []model.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b"}, CorrectAnswer: "a"},
	}}
	svc := NewContentService(producer, zerolog.Nop())

	m := &model.Milestone{Title: "Concurrency"}
	_, err := svc.QuizForMilestone(context.Background(), m, 5)
	assert.ErrorIs(t, err, ErrMalformedContent)
}

func TestAnalyzeAnswersDegradesOnError(t *testing.T) {
	svc := NewContentService(&stubProducer{err: assert.AnError}, zerolog.Nop())

	analysis := svc.AnalyzeAnswers(context.Background(), &model.Milestone{Title: "t"}, nil, nil)
	require.NotNil(t, analysis)
	assert.Empty(t, analysis.StrongAreas)
	assert.Empty(t, analysis.WeakAreas)
}
