package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/arka-labs/course-market-api/internal/models"
)

// LearnerRepository provides database access for learner records.
type LearnerRepository struct {
	db *sqlx.DB
}

// NewLearnerRepository creates a new instance of LearnerRepository.
func NewLearnerRepository(db *sqlx.DB) *LearnerRepository {
	return &LearnerRepository{db: db}
}

// FindByEmail returns a learner by email address.
func (r *LearnerRepository) FindByEmail(ctx context.Context, email string) (*models.Learner, error) {
	const query = `SELECT id, email, password_hash, first_name, last_name, created_at, updated_at FROM learners WHERE email = $1 LIMIT 1`
	var learner models.Learner
	if err := r.db.GetContext(ctx, &learner, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find learner by email: %w", err)
	}
	return &learner, nil
}

// FindByID returns a learner by identifier.
func (r *LearnerRepository) FindByID(ctx context.Context, id string) (*models.Learner, error) {
	const query = `SELECT id, email, password_hash, first_name, last_name, created_at, updated_at FROM learners WHERE id = $1 LIMIT 1`
	var learner models.Learner
	if err := r.db.GetContext(ctx, &learner, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find learner by id: %w", err)
	}
	return &learner, nil
}

// Create inserts a new learner record.
func (r *LearnerRepository) Create(ctx context.Context, learner *models.Learner) error {
	if learner.ID == "" {
		learner.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if learner.CreatedAt.IsZero() {
		learner.CreatedAt = now
	}
	learner.UpdatedAt = now

	const query = `INSERT INTO learners (id, email, password_hash, first_name, last_name, created_at, updated_at) VALUES (:id, :email, :password_hash, :first_name, :last_name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, learner); err != nil {
		return fmt.Errorf("create learner: %w", err)
	}
	return nil
}
