package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arka-labs/course-market-api/internal/middleware"
	"github.com/arka-labs/course-market-api/internal/models"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
	"github.com/arka-labs/course-market-api/pkg/response"
)

type enrollmentServiceMock struct {
	purchaseResp  *models.Purchase
	purchaseErr   error
	completeErr   error
	purchases     []models.Purchase
	courses       []models.Course
	lastLearnerID string
	lastCourseID  string
}

func (m *enrollmentServiceMock) Purchase(ctx context.Context, learnerID, courseID string) (*models.Purchase, error) {
	m.lastLearnerID = learnerID
	m.lastCourseID = courseID
	return m.purchaseResp, m.purchaseErr
}

func (m *enrollmentServiceMock) MarkCompleted(ctx context.Context, learnerID, courseID string) error {
	m.lastLearnerID = learnerID
	m.lastCourseID = courseID
	return m.completeErr
}

func (m *enrollmentServiceMock) ListPurchases(ctx context.Context, learnerID string) ([]models.Purchase, error) {
	m.lastLearnerID = learnerID
	return m.purchases, nil
}

func (m *enrollmentServiceMock) ListCourseData(ctx context.Context, learnerID string) ([]models.Course, error) {
	m.lastLearnerID = learnerID
	return m.courses, nil
}

func learnerContext(t *testing.T, w *httptest.ResponseRecorder) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextClaimsKey, &models.Claims{PrincipalID: "learner-1", Class: models.ClassLearner})
	return c
}

func TestEnrollmentHandlerPurchase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &enrollmentServiceMock{purchaseResp: &models.Purchase{ID: "p1", LearnerID: "learner-1", CourseID: "c1", Status: models.PurchaseActive}}
	handler := NewEnrollmentHandler(mockSvc)

	w := httptest.NewRecorder()
	c := learnerContext(t, w)
	req, _ := http.NewRequest(http.MethodPost, "/course/c1/purchase", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.Purchase(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "learner-1", mockSvc.lastLearnerID)
	assert.Equal(t, "c1", mockSvc.lastCourseID)
}

func TestEnrollmentHandlerPurchaseConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &enrollmentServiceMock{purchaseErr: appErrors.Clone(appErrors.ErrAlreadyPurchased, "course already purchased")}
	handler := NewEnrollmentHandler(mockSvc)

	w := httptest.NewRecorder()
	c := learnerContext(t, w)
	req, _ := http.NewRequest(http.MethodPost, "/course/c1/purchase", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.Purchase(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrAlreadyPurchased.Code, envelope.Error.Code)
}

func TestEnrollmentHandlerPurchaseWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEnrollmentHandler(&enrollmentServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/course/c1/purchase", nil)
	c.Request = req

	handler.Purchase(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEnrollmentHandlerMarkCompletedConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &enrollmentServiceMock{completeErr: appErrors.Clone(appErrors.ErrAlreadyCompleted, "course already completed")}
	handler := NewEnrollmentHandler(mockSvc)

	w := httptest.NewRecorder()
	c := learnerContext(t, w)
	req, _ := http.NewRequest(http.MethodPost, "/learner/courses/c1/complete", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.MarkCompleted(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEnrollmentHandlerListPurchases(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &enrollmentServiceMock{purchases: []models.Purchase{{ID: "p1", CourseID: "c1"}}}
	handler := NewEnrollmentHandler(mockSvc)

	w := httptest.NewRecorder()
	c := learnerContext(t, w)
	req, _ := http.NewRequest(http.MethodGet, "/learner/purchases", nil)
	c.Request = req

	handler.ListPurchases(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "learner-1", mockSvc.lastLearnerID)
	assert.Contains(t, w.Body.String(), "p1")
}
