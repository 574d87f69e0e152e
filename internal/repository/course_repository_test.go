package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arka-labs/course-market-api/internal/models"
)

func TestCourseCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("INSERT INTO courses").WillReturnResult(sqlmock.NewResult(1, 1))

	course := &models.Course{Title: "Intro to Go", Price: 49.99, CreatorID: "i1"}
	err := repo.Create(context.Background(), course)
	require.NoError(t, err)
	assert.NotEmpty(t, course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "description", "price", "image_url", "creator_id", "created_at", "updated_at"}).
		AddRow("c1", "Intro to Go", nil, 49.99, nil, "i1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, price, image_url, creator_id, created_at, updated_at FROM courses WHERE id = $1 LIMIT 1")).
		WithArgs("c1").
		WillReturnRows(rows)

	course, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Intro to Go", course.Title)
	assert.Equal(t, "i1", course.CreatorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery("SELECT id, title").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCourseUpdateOwned(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("UPDATE courses SET").WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.UpdateOwned(context.Background(), &models.Course{ID: "c1", Title: "New", Price: 10, CreatorID: "i1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestCourseUpdateOwnedNoMatch(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("UPDATE courses SET").WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.UpdateOwned(context.Background(), &models.Course{ID: "c1", CreatorID: "someone-else"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestCourseListByCreator(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "description", "price", "image_url", "creator_id", "created_at", "updated_at"}).
		AddRow("c1", "Intro to Go", nil, 49.99, nil, "i1", now, now).
		AddRow("c2", "Advanced Go", nil, 99.99, nil, "i1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, price, image_url, creator_id, created_at, updated_at FROM courses WHERE creator_id = $1 ORDER BY created_at DESC")).
		WithArgs("i1").
		WillReturnRows(rows)

	courses, err := repo.ListByCreator(context.Background(), "i1")
	require.NoError(t, err)
	assert.Len(t, courses, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseCreateSection(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("INSERT INTO course_sections").WillReturnResult(sqlmock.NewResult(1, 1))

	section := &models.CourseSection{Title: "Week 1", CourseID: "c1"}
	err := repo.CreateSection(context.Background(), section)
	require.NoError(t, err)
	assert.NotEmpty(t, section.ID)
}

func TestCourseListSections(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "course_id", "created_at", "updated_at"}).
		AddRow("s1", "Week 1", "c1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, course_id, created_at, updated_at FROM course_sections WHERE course_id = $1 ORDER BY created_at ASC")).
		WithArgs("c1").
		WillReturnRows(rows)

	sections, err := repo.ListSections(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Week 1", sections[0].Title)
}

func TestCourseSalesByCreator(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"course_id", "title", "price", "purchases", "completed", "gross_amount"}).
		AddRow("c1", "Intro to Go", 49.99, 12, 4, 599.88)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.id AS course_id, c.title, c.price")).
		WithArgs("i1").
		WillReturnRows(rows)

	sales, err := repo.SalesByCreator(context.Background(), "i1")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, 12, sales[0].Purchases)
	assert.Equal(t, 599.88, sales[0].GrossAmount)
}
