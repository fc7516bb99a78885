package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pathlight/pathlight-backend/internal/config"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/pathlight/pathlight-backend/internal/repository"
	"github.com/pathlight/pathlight-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// PersistWorker consumes the persist queue and replays roadmap snapshots into
// PostgreSQL last-write-wins. Each success clears the roadmap's dirty flag and
// notifies the owner's connected devices over pub/sub.
type PersistWorker struct {
	repo *repository.RoadmapRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewPersistWorker creates a new PersistWorker.
func NewPersistWorker(repo *repository.RoadmapRepository, rdb *redis.Client, log zerolog.Logger) *PersistWorker {
	return &PersistWorker{
		repo: repo,
		rdb:  rdb,
		log:  log.With().Str("component", "persist_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *PersistWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining snapshots before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *PersistWorker) processNext(ctx context.Context) {
	// BLPop blocks until a snapshot is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.PersistRoadmapsQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	var snap model.RoadmapSnapshot
	if err := json.Unmarshal([]byte(result[1]), &snap); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	if err := w.repo.Replace(ctx, &snap); err != nil {
		w.log.Error().Err(err).
			Str("roadmap_id", snap.RoadmapID.String()).
			Int("owner_id", snap.OwnerID).
			Msg("Persist error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, config.WorkerKey.PersistRoadmapsQueue, result[1])
		w.publish(ctx, &snap, websocket.SyncEvent{
			Type:      websocket.EventSyncFailed,
			RoadmapID: snap.RoadmapID.String(),
			Error:     "persist failed, will retry",
		})
		time.Sleep(5 * time.Second)
		return
	}

	w.rdb.Del(ctx, config.CacheKey.RoadmapDirtyKey(snap.RoadmapID.String()))
	w.publish(ctx, &snap, websocket.SyncEvent{
		Type:          websocket.EventRoadmapPersisted,
		RoadmapID:     snap.RoadmapID.String(),
		TotalProgress: snap.TotalProgress,
	})
}

func (w *PersistWorker) publish(ctx context.Context, snap *model.RoadmapSnapshot, event websocket.SyncEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := w.rdb.Publish(ctx, config.CacheKey.SyncEventsChannel(snap.OwnerID), payload).Err(); err != nil {
		w.log.Warn().Err(err).Int("owner_id", snap.OwnerID).Msg("Sync event publish error")
	}
}

// drain processes all remaining snapshots in the queue before shutdown.
func (w *PersistWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.PersistRoadmapsQueue).Result()
		if err != nil {
			break
		}

		var snap model.RoadmapSnapshot
		if err := json.Unmarshal([]byte(result), &snap); err != nil {
			w.log.Error().Err(err).Msg("Drain unmarshal error")
			continue
		}

		if err := w.repo.Replace(ctx, &snap); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.rdb.RPush(ctx, config.WorkerKey.PersistRoadmapsQueue, result)
			break
		}
		w.rdb.Del(ctx, config.CacheKey.RoadmapDirtyKey(snap.RoadmapID.String()))
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining snapshots")
	}
}
