package models

import "time"

// Review is a learner's rating of a purchased course. Reviews live in their
// own table rather than embedded in the course document, one per
// (learner, course) pair.
type Review struct {
	ID        string    `db:"id" json:"id"`
	LearnerID string    `db:"learner_id" json:"learner_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SubmitReviewRequest is the payload for reviewing a purchased course.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=500"`
}

// CourseSales aggregates purchase activity for one course in an
// instructor's sales report.
type CourseSales struct {
	CourseID    string  `db:"course_id" json:"course_id"`
	Title       string  `db:"title" json:"title"`
	Price       float64 `db:"price" json:"price"`
	Purchases   int     `db:"purchases" json:"purchases"`
	Completed   int     `db:"completed" json:"completed"`
	GrossAmount float64 `db:"gross_amount" json:"gross_amount"`
}
