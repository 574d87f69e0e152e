package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arka-labs/course-market-api/internal/models"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
)

type catalogCourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id string) (*models.Course, error)
	UpdateOwned(ctx context.Context, course *models.Course) (int64, error)
	ListByCreator(ctx context.Context, creatorID string) ([]models.Course, error)
	ListAll(ctx context.Context) ([]models.Course, error)
	CreateSection(ctx context.Context, section *models.CourseSection) error
	ListSections(ctx context.Context, courseID string) ([]models.CourseSection, error)
}

// CatalogService owns course and section records and enforces creator-scoped
// mutation.
type CatalogService struct {
	courses   catalogCourseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs a CatalogService instance.
func NewCatalogService(courses catalogCourseRepository, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CatalogService{courses: courses, validator: validate, logger: logger}
}

// CreateCourse publishes a course owned by the acting instructor.
func (s *CatalogService) CreateCourse(ctx context.Context, instructorID string, req models.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CreatorID:   instructorID,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	s.logger.Info("course created", zap.String("course_id", course.ID), zap.String("creator_id", instructorID))
	return course, nil
}

// UpdateCourse mutates a course through a compound (id, creator) match.
// A zero-row match is never reported as success: the course is re-read to
// tell a missing course from one owned by another instructor.
func (s *CatalogService) UpdateCourse(ctx context.Context, instructorID, courseID string, req models.UpdateCourseRequest) (*models.Course, error) {
	if err := validCourseID(courseID); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}
	if course.CreatorID != instructorID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "course belongs to another instructor")
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.ImageURL != nil {
		course.ImageURL = req.ImageURL
	}
	course.CreatorID = instructorID

	affected, err := s.courses.UpdateOwned(ctx, course)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	return course, nil
}

// GetCourse returns a course by identifier. Malformed identifiers are
// rejected before any store access.
func (s *CatalogService) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	if err := validCourseID(courseID); err != nil {
		return nil, err
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}
	return course, nil
}

// ListAllCourses returns the public catalog preview.
func (s *CatalogService) ListAllCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// ListCoursesByCreator returns the acting instructor's own courses.
func (s *CatalogService) ListCoursesByCreator(ctx context.Context, instructorID string) ([]models.Course, error) {
	courses, err := s.courses.ListByCreator(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// CreateSection adds a section to a course the acting instructor owns.
func (s *CatalogService) CreateSection(ctx context.Context, instructorID string, req models.CreateSectionRequest) (*models.CourseSection, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}

	if err := s.requireOwnership(ctx, instructorID, req.CourseID); err != nil {
		return nil, err
	}

	section := &models.CourseSection{Title: req.Title, CourseID: req.CourseID}
	if err := s.courses.CreateSection(ctx, section); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create section")
	}
	return section, nil
}

// ListSections returns the sections of a course the acting instructor owns.
func (s *CatalogService) ListSections(ctx context.Context, instructorID, courseID string) ([]models.CourseSection, error) {
	if err := validCourseID(courseID); err != nil {
		return nil, err
	}
	if err := s.requireOwnership(ctx, instructorID, courseID); err != nil {
		return nil, err
	}

	sections, err := s.courses.ListSections(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}
	return sections, nil
}

func (s *CatalogService) requireOwnership(ctx context.Context, instructorID, courseID string) error {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}
	if course.CreatorID != instructorID {
		return appErrors.Clone(appErrors.ErrForbidden, "course belongs to another instructor")
	}
	return nil
}

func validCourseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid course id")
	}
	return nil
}
