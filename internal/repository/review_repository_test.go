package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arka-labs/course-market-api/internal/models"
)

func TestReviewCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	mock.ExpectExec("INSERT INTO reviews").WillReturnResult(sqlmock.NewResult(1, 1))

	review := &models.Review{LearnerID: "l1", CourseID: "c1", Rating: 5, Comment: "Great"}
	err := repo.Create(context.Background(), review)
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewCreateDuplicatePair(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	mock.ExpectExec("INSERT INTO reviews").
		WillReturnError(&pq.Error{Code: "23505", Constraint: ReviewUniqueConstraint})

	err := repo.Create(context.Background(), &models.Review{LearnerID: "l1", CourseID: "c1", Rating: 4})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err, ReviewUniqueConstraint))
}

func TestReviewFindByLearnerAndCourseNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	mock.ExpectQuery("SELECT id, learner_id").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByLearnerAndCourse(context.Background(), "l1", "c1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReviewListByCourse(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReviewRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "learner_id", "course_id", "rating", "comment", "created_at", "updated_at"}).
		AddRow("r1", "l1", "c1", 5, "Great", now, now).
		AddRow("r2", "l2", "c1", 3, "", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, learner_id, course_id, rating, comment, created_at, updated_at FROM reviews WHERE course_id = $1 ORDER BY created_at DESC")).
		WithArgs("c1").
		WillReturnRows(rows)

	reviews, err := repo.ListByCourse(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 5, reviews[0].Rating)
}
