package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/pathlight/pathlight-backend/internal/progress"
)

// RoadmapRepository is the store of record for roadmap aggregates.
type RoadmapRepository struct {
	pool *pgxpool.Pool
}

// NewRoadmapRepository creates a new RoadmapRepository.
func NewRoadmapRepository(pool *pgxpool.Pool) *RoadmapRepository {
	return &RoadmapRepository{pool: pool}
}

// Create persists a drafted roadmap aggregate in a single transaction and
// assigns its id. Milestone and task ids are kept as drafted so the client's
// optimistic copy stays addressable after the save.
func (r *RoadmapRepository) Create(ctx context.Context, rm *model.Roadmap) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO roadmaps (owner_id, career, timeline, total_progress)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		rm.OwnerID, rm.Career, rm.Timeline, rm.TotalProgress,
	).Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert roadmap: %w", err)
	}

	for i := range rm.Milestones {
		m := &rm.Milestones[i]
		_, err = tx.Exec(ctx,
			`INSERT INTO milestones (id, roadmap_id, title, description, week, completed, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			m.ID, rm.ID, m.Title, m.Description, m.Week, m.Completed, i,
		)
		if err != nil {
			return fmt.Errorf("insert milestone: %w", err)
		}

		for j := range m.Tasks {
			t := &m.Tasks[j]
			_, err = tx.Exec(ctx,
				`INSERT INTO tasks (id, milestone_id, title, completed, explanation, code_snippet, video_query, exercise, position)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				t.ID, m.ID, t.Title, t.Completed, t.Explanation, t.CodeSnippet, t.VideoQuery, t.Exercise, j,
			)
			if err != nil {
				return fmt.Errorf("insert task: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// GetByID loads a full roadmap aggregate.
func (r *RoadmapRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Roadmap, error) {
	rm := &model.Roadmap{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, career, timeline, total_progress, created_at, updated_at
		 FROM roadmaps WHERE id = $1`, id,
	).Scan(&rm.ID, &rm.OwnerID, &rm.Career, &rm.Timeline, &rm.TotalProgress, &rm.CreatedAt, &rm.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadChildren(ctx, []*model.Roadmap{rm}); err != nil {
		return nil, err
	}
	return rm, nil
}

// ListByOwner loads every roadmap aggregate belonging to a learner, newest
// first.
func (r *RoadmapRepository) ListByOwner(ctx context.Context, ownerID int) ([]model.Roadmap, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, owner_id, career, timeline, total_progress, created_at, updated_at
		 FROM roadmaps WHERE owner_id = $1
		 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roadmaps []model.Roadmap
	for rows.Next() {
		var rm model.Roadmap
		if err := rows.Scan(&rm.ID, &rm.OwnerID, &rm.Career, &rm.Timeline, &rm.TotalProgress, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		roadmaps = append(roadmaps, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*model.Roadmap, len(roadmaps))
	for i := range roadmaps {
		refs[i] = &roadmaps[i]
	}
	if err := r.loadChildren(ctx, refs); err != nil {
		return nil, err
	}

	if roadmaps == nil {
		roadmaps = []model.Roadmap{}
	}
	return roadmaps, nil
}

// loadChildren fills milestones, tasks, and quiz reports for the given
// roadmaps with one query per child table.
func (r *RoadmapRepository) loadChildren(ctx context.Context, roadmaps []*model.Roadmap) error {
	if len(roadmaps) == 0 {
		return nil
	}

	roadmapIDs := make([]uuid.UUID, 0, len(roadmaps))
	byRoadmap := make(map[uuid.UUID]*model.Roadmap, len(roadmaps))
	for _, rm := range roadmaps {
		roadmapIDs = append(roadmapIDs, rm.ID)
		byRoadmap[rm.ID] = rm
	}

	// Milestones, in week order.
	rows, err := r.pool.Query(ctx,
		`SELECT id, roadmap_id, title, description, week, completed
		 FROM milestones WHERE roadmap_id = ANY($1)
		 ORDER BY roadmap_id, position`, roadmapIDs)
	if err != nil {
		return fmt.Errorf("load milestones: %w", err)
	}
	byMilestone := make(map[uuid.UUID]*milestoneRef)
	for rows.Next() {
		var m model.Milestone
		var roadmapID uuid.UUID
		if err := rows.Scan(&m.ID, &roadmapID, &m.Title, &m.Description, &m.Week, &m.Completed); err != nil {
			rows.Close()
			return err
		}
		m.Tasks = []model.Task{}
		m.QuizReports = []model.QuizReport{}
		rm := byRoadmap[roadmapID]
		rm.Milestones = append(rm.Milestones, m)
		byMilestone[m.ID] = &milestoneRef{roadmap: rm, index: len(rm.Milestones) - 1}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	// Tasks, in creation order within each milestone.
	rows, err = r.pool.Query(ctx,
		`SELECT t.id, t.milestone_id, t.title, t.completed, t.explanation, t.code_snippet, t.video_query, t.exercise
		 FROM tasks t
		 JOIN milestones m ON m.id = t.milestone_id
		 WHERE m.roadmap_id = ANY($1)
		 ORDER BY t.milestone_id, t.position`, roadmapIDs)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	for rows.Next() {
		var t model.Task
		var milestoneID uuid.UUID
		if err := rows.Scan(&t.ID, &milestoneID, &t.Title, &t.Completed, &t.Explanation, &t.CodeSnippet, &t.VideoQuery, &t.Exercise); err != nil {
			rows.Close()
			return err
		}
		if ref, ok := byMilestone[milestoneID]; ok {
			m := &ref.roadmap.Milestones[ref.index]
			m.Tasks = append(m.Tasks, t)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	// Quiz reports, oldest first (append order).
	rows, err = r.pool.Query(ctx,
		`SELECT q.id, q.milestone_id, q.score, q.total, q.strong_areas, q.weak_areas, q.summary, q.taken_at
		 FROM quiz_reports q
		 JOIN milestones m ON m.id = q.milestone_id
		 WHERE m.roadmap_id = ANY($1)
		 ORDER BY q.milestone_id, q.taken_at, q.id`, roadmapIDs)
	if err != nil {
		return fmt.Errorf("load quiz reports: %w", err)
	}
	for rows.Next() {
		var q model.QuizReport
		if err := rows.Scan(&q.ID, &q.MilestoneID, &q.Score, &q.Total, &q.StrongAreas, &q.WeakAreas, &q.Summary, &q.TakenAt); err != nil {
			rows.Close()
			return err
		}
		if ref, ok := byMilestone[q.MilestoneID]; ok {
			m := &ref.roadmap.Milestones[ref.index]
			m.QuizReports = append(m.QuizReports, q)
		}
	}
	rows.Close()
	return rows.Err()
}

type milestoneRef struct {
	roadmap *model.Roadmap
	index   int
}

// Replace overwrites a roadmap's mutable state (derived progress plus every
// completion flag) from a snapshot, last-write-wins, in one transaction.
// Structure and quiz history are not touched: order and content are immutable
// after creation, and reports are appended in their own transaction.
func (r *RoadmapRepository) Replace(ctx context.Context, snap *model.RoadmapSnapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE roadmaps SET total_progress = $1, updated_at = NOW()
		 WHERE id = $2 AND owner_id = $3`,
		snap.TotalProgress, snap.RoadmapID, snap.OwnerID)
	if err != nil {
		return fmt.Errorf("update roadmap: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	var (
		milestoneIDs  []uuid.UUID
		milestoneDone []bool
		taskIDs       []uuid.UUID
		taskDone      []bool
	)
	for i := range snap.Milestones {
		m := &snap.Milestones[i]
		milestoneIDs = append(milestoneIDs, m.ID)
		milestoneDone = append(milestoneDone, m.Completed)
		for j := range m.Tasks {
			taskIDs = append(taskIDs, m.Tasks[j].ID)
			taskDone = append(taskDone, m.Tasks[j].Completed)
		}
	}

	// Bulk flag overwrite via UNNEST, scoped to the roadmap so a stale or
	// malicious snapshot cannot reach across aggregates.
	if len(milestoneIDs) > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE milestones AS m
			 SET completed = u.completed
			 FROM UNNEST($1::uuid[], $2::bool[]) AS u (id, completed)
			 WHERE m.id = u.id AND m.roadmap_id = $3`,
			milestoneIDs, milestoneDone, snap.RoadmapID)
		if err != nil {
			return fmt.Errorf("update milestones: %w", err)
		}
	}
	if len(taskIDs) > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE tasks AS t
			 SET completed = u.completed
			 FROM UNNEST($1::uuid[], $2::bool[]) AS u (id, completed), milestones m
			 WHERE t.id = u.id AND m.id = t.milestone_id AND m.roadmap_id = $3`,
			taskIDs, taskDone, snap.RoadmapID)
		if err != nil {
			return fmt.Errorf("update tasks: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a roadmap aggregate. Children go with it via FK cascade.
func (r *RoadmapRepository) Delete(ctx context.Context, id uuid.UUID, ownerID int) error {
	var dbOwner int
	err := r.pool.QueryRow(ctx, `SELECT owner_id FROM roadmaps WHERE id = $1`, id).Scan(&dbOwner)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if dbOwner != ownerID {
		return ErrNotOwner
	}

	_, err = r.pool.Exec(ctx, `DELETE FROM roadmaps WHERE id = $1`, id)
	return err
}

// AddQuizReport runs the authoritative completion-gating pass in one
// transaction: append the report, gate the milestone, recompute the
// milestone-weighted roadmap progress. It uses the same progress functions as
// the optimistic in-memory mirror, so the two computations cannot diverge.
func (r *RoadmapRepository) AddQuizReport(ctx context.Context, roadmapID, milestoneID uuid.UUID, ownerID int, report *model.QuizReport) (*model.QuizSubmissionResult, error) {
	if report.Total <= 0 {
		return nil, progress.ErrEmptyQuiz
	}
	if report.Score < 0 {
		return nil, progress.ErrNegativeScore
	}
	if report.Score > report.Total {
		return nil, progress.ErrScoreAboveTotal
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the aggregate row for the duration of the gating pass.
	var dbOwner int
	err = tx.QueryRow(ctx,
		`SELECT owner_id FROM roadmaps WHERE id = $1 FOR UPDATE`, roadmapID,
	).Scan(&dbOwner)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if dbOwner != ownerID {
		return nil, ErrNotOwner
	}

	var alreadyCompleted bool
	err = tx.QueryRow(ctx,
		`SELECT completed FROM milestones WHERE id = $1 AND roadmap_id = $2`,
		milestoneID, roadmapID,
	).Scan(&alreadyCompleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMilestoneNotFound
	}
	if err != nil {
		return nil, err
	}

	saved := *report
	saved.MilestoneID = milestoneID
	err = tx.QueryRow(ctx,
		`INSERT INTO quiz_reports (milestone_id, score, total, strong_areas, weak_areas, summary)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, taken_at`,
		milestoneID, saved.Score, saved.Total, saved.StrongAreas, saved.WeakAreas, saved.Summary,
	).Scan(&saved.ID, &saved.TakenAt)
	if err != nil {
		return nil, fmt.Errorf("insert quiz report: %w", err)
	}

	percentage := progress.Percent(saved.Score, saved.Total)
	passed := percentage >= progress.PassThreshold

	if passed {
		// A quiz pass is mastery evidence: complete the milestone and all of
		// its tasks. A failed attempt changes nothing.
		if _, err = tx.Exec(ctx,
			`UPDATE milestones SET completed = TRUE WHERE id = $1`, milestoneID); err != nil {
			return nil, fmt.Errorf("complete milestone: %w", err)
		}
		if _, err = tx.Exec(ctx,
			`UPDATE tasks SET completed = TRUE WHERE milestone_id = $1`, milestoneID); err != nil {
			return nil, fmt.Errorf("complete tasks: %w", err)
		}
	}

	var totalMilestones, completedMilestones int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
		 FROM milestones WHERE roadmap_id = $1`, roadmapID,
	).Scan(&totalMilestones, &completedMilestones)
	if err != nil {
		return nil, fmt.Errorf("count milestones: %w", err)
	}

	newTotal := progress.Percent(completedMilestones, totalMilestones)
	if _, err = tx.Exec(ctx,
		`UPDATE roadmaps SET total_progress = $1, updated_at = NOW() WHERE id = $2`,
		newTotal, roadmapID); err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &model.QuizSubmissionResult{
		Report:             &saved,
		Passed:             passed,
		Percentage:         percentage,
		MilestoneCompleted: alreadyCompleted || passed,
		NewTotalProgress:   newTotal,
	}, nil
}
