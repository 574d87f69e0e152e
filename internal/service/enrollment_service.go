package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/arka-labs/course-market-api/internal/models"
	"github.com/arka-labs/course-market-api/internal/repository"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
)

type enrollmentCourseRepository interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type enrollmentPurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	FindByLearnerAndCourse(ctx context.Context, learnerID, courseID string) (*models.Purchase, error)
	UpdateStatus(ctx context.Context, id string, status models.PurchaseStatus) error
	ListByLearner(ctx context.Context, learnerID string) ([]models.Purchase, error)
	ListCoursesByLearner(ctx context.Context, learnerID string) ([]models.Course, error)
}

// EnrollmentService owns the purchase ledger: at most one purchase per
// (learner, course), and status transitions only move forward.
type EnrollmentService struct {
	courses   enrollmentCourseRepository
	purchases enrollmentPurchaseRepository
	logger    *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService instance.
func NewEnrollmentService(courses enrollmentCourseRepository, purchases enrollmentPurchaseRepository, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{courses: courses, purchases: purchases, logger: logger}
}

// Purchase enrolls a learner in a course. The duplicate lookup is a fast
// path only; the compound unique constraint on the purchases table is what
// makes concurrent double purchases impossible, and a constraint violation
// on insert is reported the same way as the fast-path hit.
func (s *EnrollmentService) Purchase(ctx context.Context, learnerID, courseID string) (*models.Purchase, error) {
	if err := validCourseID(courseID); err != nil {
		return nil, err
	}

	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}

	if _, err := s.purchases.FindByLearnerAndCourse(ctx, learnerID, courseID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrAlreadyPurchased, "course already purchased")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check purchases")
	}

	purchase := &models.Purchase{
		LearnerID: learnerID,
		CourseID:  courseID,
		Status:    models.PurchaseActive,
	}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		if repository.IsUniqueViolation(err, repository.PurchaseUniqueConstraint) {
			return nil, appErrors.Clone(appErrors.ErrAlreadyPurchased, "course already purchased")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record purchase")
	}

	s.logger.Info("course purchased", zap.String("learner_id", learnerID), zap.String("course_id", courseID))
	return purchase, nil
}

// MarkCompleted transitions an existing purchase to completed.
func (s *EnrollmentService) MarkCompleted(ctx context.Context, learnerID, courseID string) error {
	if err := validCourseID(courseID); err != nil {
		return err
	}

	purchase, err := s.purchases.FindByLearnerAndCourse(ctx, learnerID, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "purchase not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch purchase")
	}

	if purchase.Status == models.PurchaseCompleted {
		return appErrors.Clone(appErrors.ErrAlreadyCompleted, "course already completed")
	}

	if err := s.purchases.UpdateStatus(ctx, purchase.ID, models.PurchaseCompleted); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update purchase")
	}
	return nil
}

// ListPurchases returns the learner's purchase records.
func (s *EnrollmentService) ListPurchases(ctx context.Context, learnerID string) ([]models.Purchase, error) {
	purchases, err := s.purchases.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list purchases")
	}
	return purchases, nil
}

// ListCourseData joins the learner's purchases to their courses.
func (s *EnrollmentService) ListCourseData(ctx context.Context, learnerID string) ([]models.Course, error) {
	courses, err := s.purchases.ListCoursesByLearner(ctx, learnerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list purchased courses")
	}
	return courses, nil
}
