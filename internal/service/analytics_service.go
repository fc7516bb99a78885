package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/pathlight/pathlight-backend/internal/analytics"
	"github.com/pathlight/pathlight-backend/internal/config"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/pathlight/pathlight-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// AnalyticsService serves aggregated learning statistics with a short-lived
// Redis cache in front. Writes invalidate the cache, so the TTL only bounds
// staleness when invalidation is missed.
type AnalyticsService struct {
	cfg          *config.Config
	roadmapRepo  *repository.RoadmapRepository
	attemptsRepo *repository.AnalyticsRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(cfg *config.Config, roadmapRepo *repository.RoadmapRepository, attemptsRepo *repository.AnalyticsRepository, rdb *redis.Client, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		cfg:          cfg,
		roadmapRepo:  roadmapRepo,
		attemptsRepo: attemptsRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "analytics_service").Logger(),
	}
}

// Dashboard returns the learner's cross-roadmap dashboard, from cache when
// fresh.
func (s *AnalyticsService) Dashboard(ctx context.Context, ownerID int) (*analytics.Dashboard, error) {
	cacheKey := config.CacheKey.LearnerDashboardKey(ownerID)

	cached, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		var dash analytics.Dashboard
		if err := json.Unmarshal([]byte(cached), &dash); err == nil {
			return &dash, nil
		}
		// Corrupt cache entry: fall through and rebuild.
		s.rdb.Del(ctx, cacheKey)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Int("owner_id", ownerID).Msg("Dashboard cache read error")
	}

	dash, err := s.build(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(dash); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, payload, s.cfg.DashboardCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Int("owner_id", ownerID).Msg("Dashboard cache write error")
		}
	}

	return dash, nil
}

func (s *AnalyticsService) build(ctx context.Context, ownerID int) (*analytics.Dashboard, error) {
	roadmaps, err := s.roadmapRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.attemptsRepo.ListAttemptsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return analytics.BuildDashboard(roadmaps, attempts, analytics.DefaultTopicKey)
}

// RoadmapBreakdown aggregates quiz performance for a single roadmap, computed
// from the loaded aggregate itself so it is always consistent with what the
// roadmap view shows.
func (s *AnalyticsService) RoadmapBreakdown(ctx context.Context, ownerID int, roadmapID uuid.UUID) (*analytics.Dashboard, error) {
	rm, err := s.roadmapRepo.GetByID(ctx, roadmapID)
	if err != nil {
		return nil, err
	}
	if rm.OwnerID != ownerID {
		return nil, repository.ErrNotOwner
	}

	scope := []model.Roadmap{*rm}
	return analytics.BuildDashboard(scope, analytics.FlattenAttempts(scope), analytics.DefaultTopicKey)
}
