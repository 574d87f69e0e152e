package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/arka-labs/course-market-api/internal/models"
	"github.com/arka-labs/course-market-api/internal/repository"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
)

type reviewPurchaseRepository interface {
	FindByLearnerAndCourse(ctx context.Context, learnerID, courseID string) (*models.Purchase, error)
}

type reviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByLearnerAndCourse(ctx context.Context, learnerID, courseID string) (*models.Review, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Review, error)
}

// ReviewService appends learner reviews to courses, gated by the enrollment
// ledger. One review per (learner, course).
type ReviewService struct {
	courses   enrollmentCourseRepository
	purchases reviewPurchaseRepository
	reviews   reviewRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReviewService constructs a ReviewService instance.
func NewReviewService(courses enrollmentCourseRepository, purchases reviewPurchaseRepository, reviews reviewRepository, validate *validator.Validate, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ReviewService{courses: courses, purchases: purchases, reviews: reviews, validator: validate, logger: logger}
}

// Submit appends a review for a purchased course. An expired purchase does
// not entitle the learner to review.
func (s *ReviewService) Submit(ctx context.Context, learnerID, courseID string, req models.SubmitReviewRequest) (*models.Review, error) {
	if err := validCourseID(courseID); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}

	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}

	purchase, err := s.purchases.FindByLearnerAndCourse(ctx, learnerID, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "course not purchased")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check purchase")
	}
	if !purchase.Status.Entitles() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "purchase no longer grants access")
	}

	if _, err := s.reviews.FindByLearnerAndCourse(ctx, learnerID, courseID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrReviewExists, "course already reviewed")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check reviews")
	}

	review := &models.Review{
		LearnerID: learnerID,
		CourseID:  courseID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err, repository.ReviewUniqueConstraint) {
			return nil, appErrors.Clone(appErrors.ErrReviewExists, "course already reviewed")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record review")
	}

	s.logger.Info("review submitted", zap.String("learner_id", learnerID), zap.String("course_id", courseID), zap.Int("rating", req.Rating))
	return review, nil
}

// ListByCourse returns the public reviews of a course.
func (s *ReviewService) ListByCourse(ctx context.Context, courseID string) ([]models.Review, error) {
	if err := validCourseID(courseID); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reviews")
	}
	return reviews, nil
}
