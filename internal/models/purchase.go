package models

import "time"

// PurchaseStatus models a learner's progress through a course, not payment
// settlement.
type PurchaseStatus string

const (
	PurchaseActive    PurchaseStatus = "active"
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseExpired   PurchaseStatus = "expired"
)

// Purchase records a learner's entitlement to a course. At most one row
// exists per (learner, course) pair, enforced by a compound unique
// constraint.
type Purchase struct {
	ID          string         `db:"id" json:"id"`
	LearnerID   string         `db:"learner_id" json:"learner_id"`
	CourseID    string         `db:"course_id" json:"course_id"`
	PurchasedAt time.Time      `db:"purchased_at" json:"purchased_at"`
	Status      PurchaseStatus `db:"status" json:"status"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// Entitles reports whether the purchase grants course access, which is what
// gates review submission.
func (s PurchaseStatus) Entitles() bool {
	return s == PurchaseActive || s == PurchaseCompleted
}
