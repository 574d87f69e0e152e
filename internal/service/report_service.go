package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/arka-labs/course-market-api/internal/models"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
	"github.com/arka-labs/course-market-api/pkg/export"
)

// Report formats supported by the sales export.
const (
	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
)

type salesRepository interface {
	SalesByCreator(ctx context.Context, creatorID string) ([]models.CourseSales, error)
}

// ReportService renders an instructor's sales summary. The dataset is
// creator-scoped at the query level, so an instructor can never export
// another instructor's numbers.
type ReportService struct {
	sales  salesRepository
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewReportService constructs a ReportService instance.
func NewReportService(sales salesRepository, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		sales:  sales,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// SalesReport renders the instructor's per-course sales as CSV or PDF and
// returns the bytes with their content type.
func (s *ReportService) SalesReport(ctx context.Context, instructorID, format string) ([]byte, string, error) {
	if format != ReportFormatCSV && format != ReportFormatPDF {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	rows, err := s.sales.SalesByCreator(ctx, instructorID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sales data")
	}

	dataset := export.Dataset{
		Headers: []string{"Course", "Price", "Purchases", "Completed", "Gross"},
	}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Course":    row.Title,
			"Price":     fmt.Sprintf("%.2f", row.Price),
			"Purchases": strconv.Itoa(row.Purchases),
			"Completed": strconv.Itoa(row.Completed),
			"Gross":     fmt.Sprintf("%.2f", row.GrossAmount),
		})
	}

	switch format {
	case ReportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Course Sales Report")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
		}
		return payload, "application/pdf", nil
	default:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
		}
		return payload, "text/csv", nil
	}
}
