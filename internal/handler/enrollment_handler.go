package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arka-labs/course-market-api/internal/middleware"
	"github.com/arka-labs/course-market-api/internal/models"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
	"github.com/arka-labs/course-market-api/pkg/response"
)

type enrollmentService interface {
	Purchase(ctx context.Context, learnerID, courseID string) (*models.Purchase, error)
	MarkCompleted(ctx context.Context, learnerID, courseID string) error
	ListPurchases(ctx context.Context, learnerID string) ([]models.Purchase, error)
	ListCourseData(ctx context.Context, learnerID string) ([]models.Course, error)
}

// EnrollmentHandler wires HTTP endpoints to the enrollment ledger.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler creates a new handler.
func NewEnrollmentHandler(svc enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// Purchase godoc
// @Summary Purchase a course
// @Tags Enrollment
// @Produce json
// @Param id path string true "Course ID"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /course/{id}/purchase [post]
func (h *EnrollmentHandler) Purchase(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	purchase, err := h.service.Purchase(c.Request.Context(), claims.PrincipalID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, purchase)
}

// MarkCompleted godoc
// @Summary Mark a purchased course completed
// @Tags Enrollment
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /learner/courses/{id}/complete [post]
func (h *EnrollmentHandler) MarkCompleted(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.MarkCompleted(c.Request.Context(), claims.PrincipalID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"status": "completed"})
}

// ListPurchases godoc
// @Summary List the learner's purchases
// @Tags Enrollment
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /learner/purchases [get]
func (h *EnrollmentHandler) ListPurchases(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	purchases, err := h.service.ListPurchases(c.Request.Context(), claims.PrincipalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, purchases)
}

// ListCourseData godoc
// @Summary List the learner's purchased courses
// @Tags Enrollment
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /learner/courses [get]
func (h *EnrollmentHandler) ListCourseData(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	courses, err := h.service.ListCourseData(c.Request.Context(), claims.PrincipalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, courses)
}
