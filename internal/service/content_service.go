package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pathlight/pathlight-backend/internal/config"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/rs/zerolog"
)

// ErrMalformedContent marks producer output that failed shape validation.
// Callers treat it differently from transport failures: the producer answered,
// but what it said is unusable.
var ErrMalformedContent = errors.New("content producer returned malformed output")

// ContentProducer generates learning material. Implementations sit behind this
// interface so the engine never depends on a concrete generative backend.
type ContentProducer interface {
	GenerateRoadmap(ctx context.Context, career string, weeks int) ([]model.GeneratedMilestone, error)
	GenerateQuiz(ctx context.Context, milestoneTitle string, taskTitles []string, questionCount int) ([]model.QuizQuestion, error)
	AnalyzeQuiz(ctx context.Context, milestoneTitle string, questions []model.QuizQuestion, answers []string) (*model.QuizAnalysis, error)
}

// httpContentProducer calls an external HTTP content service.
type httpContentProducer struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewHTTPContentProducer creates a ContentProducer backed by the configured
// external content service.
func NewHTTPContentProducer(cfg *config.Config, log zerolog.Logger) ContentProducer {
	return &httpContentProducer{
		baseURL: cfg.ContentProducerURL,
		client:  &http.Client{Timeout: cfg.ContentProducerTimeout},
		log:     log.With().Str("component", "content_producer").Logger(),
	}
}

func (p *httpContentProducer) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("content producer unreachable: %w", err)
	}
	defer resp.Body.Close()

	p.log.Debug().Str("path", path).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("Content producer call")

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("content producer returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (p *httpContentProducer) GenerateRoadmap(ctx context.Context, career string, weeks int) ([]model.GeneratedMilestone, error) {
	var out struct {
		Milestones []model.GeneratedMilestone `json:"milestones"`
	}
	err := p.post(ctx, "/v1/roadmaps", map[string]any{
		"career": career,
		"weeks":  weeks,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Milestones, nil
}

func (p *httpContentProducer) GenerateQuiz(ctx context.Context, milestoneTitle string, taskTitles []string, questionCount int) ([]model.QuizQuestion, error) {
	var out struct {
		Questions []model.QuizQuestion `json:"questions"`
	}
	err := p.post(ctx, "/v1/quizzes", map[string]any{
		"milestone_title": milestoneTitle,
		"task_titles":     taskTitles,
		"question_count":  questionCount,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Questions, nil
}

func (p *httpContentProducer) AnalyzeQuiz(ctx context.Context, milestoneTitle string, questions []model.QuizQuestion, answers []string) (*model.QuizAnalysis, error) {
	var out model.QuizAnalysis
	err := p.post(ctx, "/v1/quiz-analysis", map[string]any{
		"milestone_title": milestoneTitle,
		"questions":       questions,
		"answers":         answers,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// defaultQuizQuestionCount is used when the client does not ask for a
// specific quiz length.
const defaultQuizQuestionCount = 5

// ContentService turns producer output into validated domain drafts.
type ContentService struct {
	producer ContentProducer
	log      zerolog.Logger
}

// NewContentService creates a new ContentService.
func NewContentService(producer ContentProducer, log zerolog.Logger) *ContentService {
	return &ContentService{
		producer: producer,
		log:      log.With().Str("component", "content_service").Logger(),
	}
}

// DraftRoadmap asks the producer for a full curriculum and assembles an
// unsaved roadmap draft. Milestone and task ids are assigned here so the
// client can address the draft before it is ever persisted.
func (s *ContentService) DraftRoadmap(ctx context.Context, ownerID int, req *model.GenerateRoadmapRequest) (*model.Roadmap, error) {
	generated, err := s.producer.GenerateRoadmap(ctx, req.Career, req.Weeks)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateGeneratedMilestones(generated, req.Weeks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}

	draft := &model.Roadmap{
		OwnerID:    ownerID,
		Career:     req.Career,
		Timeline:   fmt.Sprintf("%d weeks", req.Weeks),
		Milestones: make([]model.Milestone, 0, len(generated)),
	}
	for i, gm := range generated {
		m := model.Milestone{
			ID:          uuid.New(),
			Title:       gm.Title,
			Description: gm.Description,
			Week:        i + 1,
			Tasks:       make([]model.Task, 0, len(gm.Tasks)),
			QuizReports: []model.QuizReport{},
		}
		for _, gt := range gm.Tasks {
			m.Tasks = append(m.Tasks, model.Task{
				ID:          uuid.New(),
				Title:       gt.Title,
				Explanation: gt.Explanation,
				CodeSnippet: gt.CodeSnippet,
				VideoQuery:  gt.VideoQuery,
				Exercise:    gt.Exercise,
			})
		}
		draft.Milestones = append(draft.Milestones, m)
	}

	s.log.Info().Int("owner_id", ownerID).Str("career", req.Career).
		Int("weeks", req.Weeks).Msg("Roadmap drafted")
	return draft, nil
}

// QuizForMilestone asks the producer for a validated quiz over a milestone's
// tasks.
func (s *ContentService) QuizForMilestone(ctx context.Context, m *model.Milestone, questionCount int) ([]model.QuizQuestion, error) {
	if questionCount <= 0 {
		questionCount = defaultQuizQuestionCount
	}

	titles := make([]string, 0, len(m.Tasks))
	for i := range m.Tasks {
		titles = append(titles, m.Tasks[i].Title)
	}

	questions, err := s.producer.GenerateQuiz(ctx, m.Title, titles, questionCount)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateQuizQuestions(questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}
	return questions, nil
}

// AnalyzeAnswers asks the producer for a qualitative verdict on a finished
// quiz. A producer failure degrades to an empty analysis rather than blocking
// the report, since the score alone is enough to gate on.
func (s *ContentService) AnalyzeAnswers(ctx context.Context, m *model.Milestone, questions []model.QuizQuestion, answers []string) *model.QuizAnalysis {
	analysis, err := s.producer.AnalyzeQuiz(ctx, m.Title, questions, answers)
	if err != nil {
		s.log.Warn().Err(err).Str("milestone", m.Title).Msg("Quiz analysis unavailable")
		return &model.QuizAnalysis{StrongAreas: []string{}, WeakAreas: []string{}}
	}
	return analysis
}
