package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "assetdesk/internal/errors"
	"assetdesk/internal/export"
	"assetdesk/internal/pagination"
	"assetdesk/internal/services"
)

// ReportHandler serves the audit log and derived reporting views.
type ReportHandler struct {
	auditService  services.AuditServicer
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(auditService services.AuditServicer, reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{auditService: auditService, reportService: reportService}
}

// ListLogsRequest holds the query parameters for reading the audit log.
type ListLogsRequest struct {
	pagination.PageRequest
	Action   string `form:"action" binding:"omitempty,audit_action"`
	EntityID string `form:"entityId"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// AdminLogs retrieves a filtered page of audit entries
// @Summary     List audit logs
// @Description Paginated, filtered audit timeline, newest first
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       action   query string false "Audit action"
// @Param       entityId query string false "Entity ID"
// @Param       from     query string false "Start date (YYYY-MM-DD)"
// @Param       to       query string false "End date (YYYY-MM-DD)"
// @Param       page     query int    false "Page"
// @Param       pageSize query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.AuditLog]
// @Router      /assignments/admin/logs [get]
func (h *ReportHandler) AdminLogs(c *gin.Context) {
	var req ListLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.AuditFilter{Action: req.Action, EntityID: req.EntityID}
	filter.From = parseDate(req.From)
	if d := parseDate(req.To); d != nil {
		end := d.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	result, err := h.auditService.List(filter, req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminLogsCSV exports a filtered slice of the audit log as CSV
// @Summary     Export audit logs as CSV
// @Description Flattens audit entries (or the merged retired view for RETIRE_ASSET) into tabular rows
// @Tags        reports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       action   query string false "Audit action selecting the column schema"
// @Param       page     query int    false "Page"
// @Param       pageSize query int    false "Page size (up to 1000)"
// @Success     200 {string} string "CSV payload"
// @Router      /assignments/admin/logs.csv [get]
func (h *ReportHandler) AdminLogsCSV(c *gin.Context) {
	var req ListLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	table, err := h.reportService.ExportLogs(req.Action, req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename="+export.Filename("it_logs"))
	if err := export.WriteCSV(c.Writer, table.Headers, table.Rows); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
	}
}

// RetiredAssets lists retired assets merged with their terminal assignment
// @Summary     Retired assets
// @Description Retired assets with employee and reason recovered from the assignment ledger
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       page     query int false "Page"
// @Param       pageSize query int false "Page size"
// @Success     200 {object} pagination.PageResponse[services.RetiredAssetRow]
// @Router      /assignments/admin/retired [get]
func (h *ReportHandler) RetiredAssets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.reportService.RetiredAssets(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MonthlyReport aggregates lifecycle transitions per month
// @Summary     Monthly activity
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Success     200 {array} services.MonthlyActivity
// @Router      /assignments/admin/monthly [get]
func (h *ReportHandler) MonthlyReport(c *gin.Context) {
	year := time.Now().UTC().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
			return
		}
		year = parsed
	}

	report, err := h.reportService.MonthlyReport(year)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "months": report})
}
