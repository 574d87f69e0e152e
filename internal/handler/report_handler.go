package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arka-labs/course-market-api/internal/middleware"
	"github.com/arka-labs/course-market-api/internal/service"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
	"github.com/arka-labs/course-market-api/pkg/response"
)

type reportService interface {
	SalesReport(ctx context.Context, instructorID, format string) ([]byte, string, error)
}

// ReportHandler serves instructor sales exports.
type ReportHandler struct {
	service reportService
}

// NewReportHandler creates a new handler.
func NewReportHandler(svc reportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Sales godoc
// @Summary Export the instructor's sales summary
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} byte
// @Failure 400 {object} response.Envelope
// @Router /instructor/reports/sales [get]
func (h *ReportHandler) Sales(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := c.DefaultQuery("format", service.ReportFormatCSV)
	payload, contentType, err := h.service.SalesReport(c.Request.Context(), claims.PrincipalID, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sales-report.`+format+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
