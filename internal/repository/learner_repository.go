package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pathlight/pathlight-backend/internal/model"
)

// Boundary errors shared by all repositories. Ownership is enforced here, at
// the persistence boundary — the pure engine functions are owner-agnostic.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrNotOwner          = errors.New("resource belongs to another learner")
	ErrMilestoneNotFound = errors.New("milestone not found in roadmap")
)

// LearnerRepository handles learner identity data access.
type LearnerRepository struct {
	pool *pgxpool.Pool
}

// NewLearnerRepository creates a new LearnerRepository.
func NewLearnerRepository(pool *pgxpool.Pool) *LearnerRepository {
	return &LearnerRepository{pool: pool}
}

// Create inserts a new learner.
func (r *LearnerRepository) Create(ctx context.Context, l *model.Learner) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO learners (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		l.Name, l.Email, l.PasswordHash,
	).Scan(&l.ID, &l.CreatedAt)
}

// GetByID retrieves a learner by id.
func (r *LearnerRepository) GetByID(ctx context.Context, id int) (*model.Learner, error) {
	l := &model.Learner{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at
		 FROM learners WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.Email, &l.PasswordHash, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetByEmail retrieves a learner by email.
func (r *LearnerRepository) GetByEmail(ctx context.Context, email string) (*model.Learner, error) {
	l := &model.Learner{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at
		 FROM learners WHERE email = $1`, email,
	).Scan(&l.ID, &l.Name, &l.Email, &l.PasswordHash, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}
