package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "assetdesk/internal/errors"
	"assetdesk/internal/pagination"
	"assetdesk/internal/services"
)

// AssignmentHandler handles assignment ledger requests.
type AssignmentHandler struct {
	assignmentService services.AssignmentServicer
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService services.AssignmentServicer) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// AssignRequest represents the payload for handing an asset to an employee.
// The asset and employee may each be given as an internal ID or a business
// code (asset code / serial number, employee code).
type AssignRequest struct {
	AssetID           string `json:"assetId" binding:"omitempty,max=128"`
	AssetCode         string `json:"assetCode" binding:"omitempty,max=128"`
	EmployeeID        string `json:"employeeId" binding:"required,max=128"`
	Notes             string `json:"notes" binding:"max=1000"`
	ConditionOnAssign string `json:"conditionOnAssign" binding:"max=500"`
}

// ReturnRequest represents the payload for taking an asset back.
type ReturnRequest struct {
	Notes             string `json:"notes" binding:"max=1000"`
	ConditionOnReturn string `json:"conditionOnReturn" binding:"max=500"`
	Retired           bool   `json:"retired"`
	RetireReason      string `json:"retireReason" binding:"max=500"`
}

// AmendReturnRequest represents post-hoc corrections to a returned assignment.
type AmendReturnRequest struct {
	Notes             *string `json:"notes" binding:"omitempty,max=1000"`
	ConditionOnReturn *string `json:"conditionOnReturn" binding:"omitempty,max=500"`
	Retired           *bool   `json:"retired"`
	RetireReason      *string `json:"retireReason" binding:"omitempty,max=500"`
}

// ListAssignmentsRequest holds the query parameters for listing assignments.
type ListAssignmentsRequest struct {
	pagination.PageRequest
	Status       string `form:"status"`
	AssetID      string `form:"assetId"`
	AssignmentID string `form:"assignmentId"`
	EmployeeID   string `form:"employeeId"`
	EmployeeName string `form:"employeeName"`
	Retired      *bool  `form:"retired"`
	AssignedFrom string `form:"assignedFrom" binding:"omitempty,datetime=2006-01-02"`
	AssignedTo   string `form:"assignedTo" binding:"omitempty,datetime=2006-01-02"`
	ReturnedFrom string `form:"returnedFrom" binding:"omitempty,datetime=2006-01-02"`
	ReturnedTo   string `form:"returnedTo" binding:"omitempty,datetime=2006-01-02"`
}

// Assign hands an asset to an employee
// @Summary     Assign an asset
// @Description Create an active assignment; the asset must be available
// @Tags        assignments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AssignRequest true "Assignment details"
// @Success     201 {object} models.Assignment
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Unknown asset or employee"
// @Failure     409 {object} ErrorResponse "Asset not available (names current holder)"
// @Router      /assignments [post]
func (h *AssignmentHandler) Assign(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.AssetID == "" && req.AssetCode == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "assetId or assetCode is required"))
		return
	}

	assignment, err := h.assignmentService.Assign(actor, services.AssignInput{
		AssetID:           req.AssetID,
		AssetCode:         req.AssetCode,
		EmployeeID:        req.EmployeeID,
		Notes:             req.Notes,
		ConditionOnAssign: req.ConditionOnAssign,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"assignment": assignment})
}

// Return takes an asset back from its holder
// @Summary     Return an asset
// @Description Close the active assignment; optionally retire the asset with a reason
// @Tags        assignments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string        true "Assignment ID"
// @Param       request body ReturnRequest true "Return details"
// @Success     200 {object} models.Assignment
// @Failure     400 {object} ErrorResponse "Missing retire reason"
// @Failure     404 {object} ErrorResponse "Unknown assignment"
// @Failure     409 {object} ErrorResponse "Assignment no longer active"
// @Router      /assignments/{id}/return [post]
func (h *AssignmentHandler) Return(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	assignment, err := h.assignmentService.Return(actor, c.Param("id"), services.ReturnInput{
		Notes:             req.Notes,
		ConditionOnReturn: req.ConditionOnReturn,
		Retired:           req.Retired,
		RetireReason:      req.RetireReason,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignment": assignment})
}

// AmendReturn corrects a returned assignment
// @Summary     Amend a returned assignment
// @Description Correct notes/condition or toggle the retired flag on a non-active assignment
// @Tags        assignments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Assignment ID"
// @Param       request body AmendReturnRequest true "Fields to amend"
// @Success     200 {object} models.Assignment
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Unknown assignment"
// @Failure     409 {object} ErrorResponse "Assignment still active"
// @Router      /assignments/{id} [patch]
func (h *AssignmentHandler) AmendReturn(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AmendReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	assignment, err := h.assignmentService.AmendReturn(actor, c.Param("id"), services.AmendReturnFields{
		Notes:             req.Notes,
		ConditionOnReturn: req.ConditionOnReturn,
		Retired:           req.Retired,
		RetireReason:      req.RetireReason,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignment": assignment})
}

// ListAssignments retrieves a filtered page of assignments
// @Summary     List assignments
// @Tags        assignments
// @Produce     json
// @Security    BearerAuth
// @Param       status       query string false "Status or comma-joined statuses (e.g. returned,retired)"
// @Param       assetId      query string false "Asset ID"
// @Param       employeeId   query string false "Employee ID"
// @Param       employeeName query string false "Employee name substring"
// @Param       retired      query bool   false "Retired flag"
// @Param       page         query int    false "Page"
// @Param       pageSize     query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Assignment]
// @Router      /assignments [get]
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	var req ListAssignmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.AssignmentFilter{
		Status:       req.Status,
		AssetID:      req.AssetID,
		AssignmentID: req.AssignmentID,
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Retired:      req.Retired,
	}
	filter.AssignedFrom = parseDate(req.AssignedFrom)
	filter.ReturnedFrom = parseDate(req.ReturnedFrom)
	if d := parseDate(req.AssignedTo); d != nil {
		end := d.Add(24*time.Hour - time.Nanosecond)
		filter.AssignedTo = &end
	}
	if d := parseDate(req.ReturnedTo); d != nil {
		end := d.Add(24*time.Hour - time.Nanosecond)
		filter.ReturnedTo = &end
	}

	result, err := h.assignmentService.ListAssignments(filter, req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MyAssets lists the calling employee's own assignments
// @Summary     My assets
// @Tags        assignments
// @Produce     json
// @Security    BearerAuth
// @Param       page     query int false "Page"
// @Param       pageSize query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Assignment]
// @Router      /me/assets [get]
func (h *AssignmentHandler) MyAssets(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.assignmentService.MyAssignments(actor.ID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
