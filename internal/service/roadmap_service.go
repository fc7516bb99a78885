package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/pathlight/pathlight-backend/internal/config"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/pathlight/pathlight-backend/internal/progress"
	"github.com/pathlight/pathlight-backend/internal/repository"
	"github.com/pathlight/pathlight-backend/internal/response"
	"github.com/pathlight/pathlight-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RoadmapService orchestrates roadmap lifecycle and the optimistic mutation
// flow. Ownership is verified on every operation before any state is touched.
type RoadmapService struct {
	repo *repository.RoadmapRepository
	sync *SyncCoordinator
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewRoadmapService creates a new RoadmapService.
func NewRoadmapService(repo *repository.RoadmapRepository, sync *SyncCoordinator, rdb *redis.Client, log zerolog.Logger) *RoadmapService {
	return &RoadmapService{
		repo: repo,
		sync: sync,
		rdb:  rdb,
		log:  log.With().Str("component", "roadmap_service").Logger(),
	}
}

// Create persists a drafted roadmap for the learner. The draft keeps its
// milestone/task ids; only the roadmap id is assigned at save time.
func (s *RoadmapService) Create(ctx context.Context, ownerID int, draft *model.Roadmap) error {
	draft.OwnerID = ownerID
	if err := s.repo.Create(ctx, draft); err != nil {
		return fmt.Errorf("create roadmap: %w", err)
	}

	s.invalidateDashboard(ctx, ownerID)
	s.log.Info().Int("owner_id", ownerID).Str("roadmap_id", draft.ID.String()).Msg("Roadmap created")
	return nil
}

// List returns all of the learner's roadmaps, newest first.
func (s *RoadmapService) List(ctx context.Context, ownerID int) ([]model.Roadmap, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get loads one roadmap and verifies ownership.
func (s *RoadmapService) Get(ctx context.Context, ownerID int, roadmapID uuid.UUID) (*model.Roadmap, error) {
	rm, err := s.repo.GetByID(ctx, roadmapID)
	if err != nil {
		return nil, err
	}
	if rm.OwnerID != ownerID {
		return nil, repository.ErrNotOwner
	}
	return rm, nil
}

// Delete removes a roadmap the learner owns.
func (s *RoadmapService) Delete(ctx context.Context, ownerID int, roadmapID uuid.UUID) error {
	if err := s.repo.Delete(ctx, roadmapID, ownerID); err != nil {
		return err
	}
	s.invalidateDashboard(ctx, ownerID)
	return nil
}

// ToggleTask applies a task completion change optimistically: the in-memory
// aggregate is mutated and returned immediately, and the snapshot is queued
// for background persistence. The returned SyncStatus tells the client whether
// the write was queued or the queue is degraded.
func (s *RoadmapService) ToggleTask(ctx context.Context, ownerID int, roadmapID, milestoneID, taskID uuid.UUID, completed bool) (*model.Roadmap, *response.SyncStatus, error) {
	rm, err := s.Get(ctx, ownerID, roadmapID)
	if err != nil {
		return nil, nil, err
	}

	if err := progress.ApplyTaskToggle(rm, milestoneID, taskID, completed); err != nil {
		return nil, nil, err
	}

	status := s.sync.Enqueue(ctx, rm)
	s.invalidateDashboard(ctx, ownerID)
	return rm, status, nil
}

// UnlockStates returns the per-task unlock flags for a milestone.
func (s *RoadmapService) UnlockStates(ctx context.Context, ownerID int, roadmapID, milestoneID uuid.UUID) ([]bool, error) {
	rm, err := s.Get(ctx, ownerID, roadmapID)
	if err != nil {
		return nil, err
	}

	m := rm.MilestoneByID(milestoneID)
	if m == nil {
		return nil, repository.ErrMilestoneNotFound
	}
	return progress.UnlockStates(m), nil
}

// SubmitQuizReport runs the authoritative gating pass synchronously — quiz
// outcomes decide milestone completion, so they are never left to the
// fire-and-forget path. On success the learner's other devices are notified
// over pub/sub.
func (s *RoadmapService) SubmitQuizReport(ctx context.Context, ownerID int, roadmapID, milestoneID uuid.UUID, req *model.SubmitQuizReportRequest) (*model.QuizSubmissionResult, error) {
	report := &model.QuizReport{
		Score:       *req.Score,
		Total:       req.Total,
		StrongAreas: req.StrongAreas,
		WeakAreas:   req.WeakAreas,
		Summary:     req.Summary,
	}
	if report.StrongAreas == nil {
		report.StrongAreas = []string{}
	}
	if report.WeakAreas == nil {
		report.WeakAreas = []string{}
	}

	result, err := s.repo.AddQuizReport(ctx, roadmapID, milestoneID, ownerID, report)
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, ownerID)
	s.publishSyncEvent(ctx, ownerID, websocket.SyncEvent{
		Type:          websocket.EventQuizGraded,
		RoadmapID:     roadmapID.String(),
		MilestoneID:   milestoneID.String(),
		TotalProgress: result.NewTotalProgress,
	})

	s.log.Info().Int("owner_id", ownerID).Str("roadmap_id", roadmapID.String()).
		Int("percentage", result.Percentage).Bool("passed", result.Passed).
		Msg("Quiz report recorded")
	return result, nil
}

// invalidateDashboard drops the cached analytics snapshot after any write.
func (s *RoadmapService) invalidateDashboard(ctx context.Context, ownerID int) {
	if err := s.rdb.Del(ctx, config.CacheKey.LearnerDashboardKey(ownerID)).Err(); err != nil {
		s.log.Warn().Err(err).Int("owner_id", ownerID).Msg("Dashboard cache invalidation error")
	}
}

func (s *RoadmapService) publishSyncEvent(ctx context.Context, ownerID int, event websocket.SyncEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.SyncEventsChannel(ownerID), payload).Err(); err != nil {
		s.log.Warn().Err(err).Int("owner_id", ownerID).Msg("Sync event publish error")
	}
}
