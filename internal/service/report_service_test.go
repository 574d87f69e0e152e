package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arka-labs/course-market-api/internal/models"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
)

type mockSalesRepo struct {
	rows []models.CourseSales
	err  error
}

func (m *mockSalesRepo) SalesByCreator(ctx context.Context, creatorID string) ([]models.CourseSales, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func TestSalesReportCSV(t *testing.T) {
	repo := &mockSalesRepo{rows: []models.CourseSales{
		{CourseID: testCourseID, Title: "Intro to Go", Price: 49.99, Purchases: 12, Completed: 4, GrossAmount: 599.88},
	}}
	svc := NewReportService(repo, zap.NewNop())

	payload, contentType, err := svc.SalesReport(context.Background(), "instructor-1", ReportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	body := string(payload)
	assert.True(t, strings.HasPrefix(body, "Course,Price,Purchases,Completed,Gross"))
	assert.Contains(t, body, "Intro to Go,49.99,12,4,599.88")
}

func TestSalesReportPDF(t *testing.T) {
	repo := &mockSalesRepo{rows: []models.CourseSales{
		{CourseID: testCourseID, Title: "Intro to Go", Price: 49.99, Purchases: 1, Completed: 0, GrossAmount: 49.99},
	}}
	svc := NewReportService(repo, zap.NewNop())

	payload, contentType, err := svc.SalesReport(context.Background(), "instructor-1", ReportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestSalesReportUnknownFormat(t *testing.T) {
	svc := NewReportService(&mockSalesRepo{}, zap.NewNop())

	_, _, err := svc.SalesReport(context.Background(), "instructor-1", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
