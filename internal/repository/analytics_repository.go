package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pathlight/pathlight-backend/internal/analytics"
)

// AnalyticsRepository reads quiz attempts for aggregation.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// ListAttemptsByOwner returns every quiz attempt across all of a learner's
// roadmaps, oldest first so aggregation sees attempts in the order they were
// taken.
func (r *AnalyticsRepository) ListAttemptsByOwner(ctx context.Context, ownerID int) ([]analytics.Attempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT rm.id, rm.career, m.id, m.title, q.score, q.total, q.strong_areas, q.weak_areas, q.taken_at
		 FROM quiz_reports q
		 JOIN milestones m ON m.id = q.milestone_id
		 JOIN roadmaps rm ON rm.id = m.roadmap_id
		 WHERE rm.owner_id = $1
		 ORDER BY q.taken_at, q.id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []analytics.Attempt
	for rows.Next() {
		var a analytics.Attempt
		if err := rows.Scan(&a.RoadmapID, &a.Career, &a.MilestoneID, &a.MilestoneTitle,
			&a.Score, &a.Total, &a.StrongAreas, &a.WeakAreas, &a.TakenAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
