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

// CourseRepository handles persistence of courses and their sections.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	const query = `INSERT INTO courses (id, title, description, price, image_url, creator_id, created_at, updated_at) VALUES (:id, :title, :description, :price, :image_url, :creator_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// FindByID returns a course by identifier.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, title, description, price, image_url, creator_id, created_at, updated_at FROM courses WHERE id = $1 LIMIT 1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course by id: %w", err)
	}
	return &course, nil
}

// UpdateOwned applies the mutation scoped by a compound match on course ID
// and creator. It returns the number of rows matched so the caller can tell
// a successful update apart from a wrong id or wrong owner.
func (r *CourseRepository) UpdateOwned(ctx context.Context, course *models.Course) (int64, error) {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET title = :title, description = :description, price = :price, image_url = :image_url, updated_at = :updated_at WHERE id = :id AND creator_id = :creator_id`
	res, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return 0, fmt.Errorf("update course: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update course rows affected: %w", err)
	}
	return affected, nil
}

// ListByCreator returns the courses owned by an instructor, newest first.
func (r *CourseRepository) ListByCreator(ctx context.Context, creatorID string) ([]models.Course, error) {
	const query = `SELECT id, title, description, price, image_url, creator_id, created_at, updated_at FROM courses WHERE creator_id = $1 ORDER BY created_at DESC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, creatorID); err != nil {
		return nil, fmt.Errorf("list courses by creator: %w", err)
	}
	return courses, nil
}

// ListAll returns the public course catalog, newest first.
func (r *CourseRepository) ListAll(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, title, description, price, image_url, creator_id, created_at, updated_at FROM courses ORDER BY created_at DESC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// CreateSection inserts a new course section.
func (r *CourseRepository) CreateSection(ctx context.Context, section *models.CourseSection) error {
	if section.ID == "" {
		section.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if section.CreatedAt.IsZero() {
		section.CreatedAt = now
	}
	section.UpdatedAt = now

	const query = `INSERT INTO course_sections (id, title, course_id, created_at, updated_at) VALUES (:id, :title, :course_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, section); err != nil {
		return fmt.Errorf("create section: %w", err)
	}
	return nil
}

// ListSections returns the sections of a course in insertion order.
func (r *CourseRepository) ListSections(ctx context.Context, courseID string) ([]models.CourseSection, error) {
	const query = `SELECT id, title, course_id, created_at, updated_at FROM course_sections WHERE course_id = $1 ORDER BY created_at ASC`
	var sections []models.CourseSection
	if err := r.db.SelectContext(ctx, &sections, query, courseID); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// SalesByCreator aggregates purchase counts and gross revenue per course for
// one instructor.
func (r *CourseRepository) SalesByCreator(ctx context.Context, creatorID string) ([]models.CourseSales, error) {
	const query = `SELECT c.id AS course_id, c.title, c.price,
        COUNT(p.id) AS purchases,
        COUNT(p.id) FILTER (WHERE p.status = 'completed') AS completed,
        c.price * COUNT(p.id) AS gross_amount
        FROM courses c
        LEFT JOIN purchases p ON p.course_id = c.id
        WHERE c.creator_id = $1
        GROUP BY c.id, c.title, c.price
        ORDER BY c.created_at DESC`
	var sales []models.CourseSales
	if err := r.db.SelectContext(ctx, &sales, query, creatorID); err != nil {
		return nil, fmt.Errorf("sales by creator: %w", err)
	}
	return sales, nil
}
