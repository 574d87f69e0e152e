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

// ReviewUniqueConstraint names the compound unique index on
// reviews (learner_id, course_id).
const ReviewUniqueConstraint = "reviews_learner_course_key"

// ReviewRepository handles persistence of course reviews.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository constructs the repository.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create appends a review.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	const query = `INSERT INTO reviews (id, learner_id, course_id, rating, comment, created_at, updated_at) VALUES (:id, :learner_id, :course_id, :rating, :comment, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// FindByLearnerAndCourse returns the review for a (learner, course) pair.
func (r *ReviewRepository) FindByLearnerAndCourse(ctx context.Context, learnerID, courseID string) (*models.Review, error) {
	const query = `SELECT id, learner_id, course_id, rating, comment, created_at, updated_at FROM reviews WHERE learner_id = $1 AND course_id = $2 LIMIT 1`
	var review models.Review
	if err := r.db.GetContext(ctx, &review, query, learnerID, courseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return &review, nil
}

// ListByCourse returns a course's reviews, newest first.
func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Review, error) {
	const query = `SELECT id, learner_id, course_id, rating, comment, created_at, updated_at FROM reviews WHERE course_id = $1 ORDER BY created_at DESC`
	var reviews []models.Review
	if err := r.db.SelectContext(ctx, &reviews, query, courseID); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
