package service

import (
	"context"
	"encoding/json"

	"github.com/pathlight/pathlight-backend/internal/config"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/pathlight/pathlight-backend/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// SyncCoordinator ships optimistic mutations to durable storage. The request
// path applies a mutation in memory, answers immediately, and hands the full
// snapshot here; a background worker replays it last-write-wins. A mutation is
// never rolled back — when the queue is unreachable the response only carries
// a degraded warning so the client can resubmit later.
type SyncCoordinator struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewSyncCoordinator creates a new SyncCoordinator.
func NewSyncCoordinator(rdb *redis.Client, log zerolog.Logger) *SyncCoordinator {
	return &SyncCoordinator{
		rdb: rdb,
		log: log.With().Str("component", "sync_coordinator").Logger(),
	}
}

// Enqueue snapshots the roadmap's mutable state onto the persist queue and
// marks it dirty. The returned SyncStatus is attached to the HTTP response:
// "queued" on success, "degraded" when the queue is unreachable.
func (s *SyncCoordinator) Enqueue(ctx context.Context, rm *model.Roadmap) *response.SyncStatus {
	snap := model.SnapshotOf(rm)

	payload, err := json.Marshal(snap)
	if err != nil {
		// A snapshot is plain data; this never fires outside of programmer error.
		s.log.Error().Err(err).Str("roadmap_id", rm.ID.String()).Msg("Snapshot marshal error")
		return &response.SyncStatus{State: response.SyncDegraded, Message: "changes saved locally but not queued for sync"}
	}

	if err := s.rdb.Set(ctx, config.CacheKey.RoadmapDirtyKey(rm.ID.String()), "1", 0).Err(); err != nil {
		s.log.Warn().Err(err).Str("roadmap_id", rm.ID.String()).Msg("Dirty flag error")
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistRoadmapsQueue, payload).Err(); err != nil {
		s.log.Error().Err(err).Str("roadmap_id", rm.ID.String()).Msg("Enqueue error")
		return &response.SyncStatus{State: response.SyncDegraded, Message: "changes saved locally but not queued for sync"}
	}

	return &response.SyncStatus{State: response.SyncQueued}
}
