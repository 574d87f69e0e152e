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

// PurchaseUniqueConstraint names the compound unique index on
// purchases (learner_id, course_id). The insert path relies on it as the
// authoritative guard against concurrent double purchases.
const PurchaseUniqueConstraint = "purchases_learner_course_key"

// PurchaseRepository handles persistence of the enrollment ledger.
type PurchaseRepository struct {
	db *sqlx.DB
}

// NewPurchaseRepository constructs the repository.
func NewPurchaseRepository(db *sqlx.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Create inserts a new purchase row. A unique violation on the
// (learner_id, course_id) pair stays reachable through the wrapped error so
// the service can map it to its conflict error.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if purchase.PurchasedAt.IsZero() {
		purchase.PurchasedAt = now
	}
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = now
	}
	purchase.UpdatedAt = now

	const query = `INSERT INTO purchases (id, learner_id, course_id, purchased_at, status, created_at, updated_at) VALUES (:id, :learner_id, :course_id, :purchased_at, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, purchase); err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// FindByLearnerAndCourse returns the purchase for a (learner, course) pair.
func (r *PurchaseRepository) FindByLearnerAndCourse(ctx context.Context, learnerID, courseID string) (*models.Purchase, error) {
	const query = `SELECT id, learner_id, course_id, purchased_at, status, created_at, updated_at FROM purchases WHERE learner_id = $1 AND course_id = $2 LIMIT 1`
	var purchase models.Purchase
	if err := r.db.GetContext(ctx, &purchase, query, learnerID, courseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find purchase: %w", err)
	}
	return &purchase, nil
}

// UpdateStatus transitions the status of a purchase in place.
func (r *PurchaseRepository) UpdateStatus(ctx context.Context, id string, status models.PurchaseStatus) error {
	const query = `UPDATE purchases SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	return nil
}

// ListByLearner returns a learner's purchases, newest first.
func (r *PurchaseRepository) ListByLearner(ctx context.Context, learnerID string) ([]models.Purchase, error) {
	const query = `SELECT id, learner_id, course_id, purchased_at, status, created_at, updated_at FROM purchases WHERE learner_id = $1 ORDER BY purchased_at DESC`
	var purchases []models.Purchase
	if err := r.db.SelectContext(ctx, &purchases, query, learnerID); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}

// ListCoursesByLearner joins a learner's purchases to their courses.
func (r *PurchaseRepository) ListCoursesByLearner(ctx context.Context, learnerID string) ([]models.Course, error) {
	const query = `SELECT c.id, c.title, c.description, c.price, c.image_url, c.creator_id, c.created_at, c.updated_at
        FROM purchases p
        JOIN courses c ON c.id = p.course_id
        WHERE p.learner_id = $1
        ORDER BY p.purchased_at DESC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, learnerID); err != nil {
		return nil, fmt.Errorf("list purchased courses: %w", err)
	}
	return courses, nil
}
