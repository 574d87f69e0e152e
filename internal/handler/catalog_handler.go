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

type catalogService interface {
	CreateCourse(ctx context.Context, instructorID string, req models.CreateCourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, instructorID, courseID string, req models.UpdateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
	ListAllCourses(ctx context.Context) ([]models.Course, error)
	ListCoursesByCreator(ctx context.Context, instructorID string) ([]models.Course, error)
	CreateSection(ctx context.Context, instructorID string, req models.CreateSectionRequest) (*models.CourseSection, error)
	ListSections(ctx context.Context, instructorID, courseID string) ([]models.CourseSection, error)
}

// CatalogHandler wires HTTP endpoints to the catalog service.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler creates a new handler.
func NewCatalogHandler(svc catalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// CreateCourse godoc
// @Summary Publish a course
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body models.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /instructor/courses [post]
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	course, err := h.service.CreateCourse(c.Request.Context(), claims.PrincipalID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, course)
}

// UpdateCourse godoc
// @Summary Update an owned course
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body models.UpdateCourseRequest true "Course fields"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /instructor/courses/{id} [put]
func (h *CatalogHandler) UpdateCourse(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	course, err := h.service.UpdateCourse(c.Request.Context(), claims.PrincipalID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, course)
}

// ListMyCourses godoc
// @Summary List the instructor's own courses
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /instructor/courses [get]
func (h *CatalogHandler) ListMyCourses(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	courses, err := h.service.ListCoursesByCreator(c.Request.Context(), claims.PrincipalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, courses)
}

// CreateSection godoc
// @Summary Add a section to an owned course
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body models.CreateSectionRequest true "Section payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /instructor/sections [post]
func (h *CatalogHandler) CreateSection(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid section payload"))
		return
	}

	section, err := h.service.CreateSection(c.Request.Context(), claims.PrincipalID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, section)
}

// ListSections godoc
// @Summary List sections of an owned course
// @Tags Catalog
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /instructor/courses/{id}/sections [get]
func (h *CatalogHandler) ListSections(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	sections, err := h.service.ListSections(c.Request.Context(), claims.PrincipalID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, sections)
}

// Preview godoc
// @Summary Public course catalog
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /course/preview [get]
func (h *CatalogHandler) Preview(c *gin.Context) {
	courses, err := h.service.ListAllCourses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, courses)
}

// GetCourse godoc
// @Summary Public course detail
// @Tags Catalog
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /course/{id} [get]
func (h *CatalogHandler) GetCourse(c *gin.Context) {
	course, err := h.service.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, course)
}
