package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "assetdesk/internal/errors"
	"assetdesk/internal/metrics"
	"assetdesk/internal/models"
	"assetdesk/internal/pagination"
)

// assignmentService is the state-machine core. It guarantees that at most
// one active assignment exists per asset and keeps asset status in sync
// with assignment transitions inside one database transaction.
type assignmentService struct {
	db        *gorm.DB
	assets    AssetServicer
	employees EmployeeServicer
	audit     AuditServicer
}

// NewAssignmentService creates a new AssignmentServicer.
func NewAssignmentService(db *gorm.DB, assets AssetServicer, employees EmployeeServicer, audit AuditServicer) AssignmentServicer {
	return &assignmentService{db: db, assets: assets, employees: employees, audit: audit}
}

// Assign hands an asset to an employee. The availability check is a guarded
// single-row update on the asset (status active -> assigned), so concurrent
// callers racing for the same asset see exactly one winner; losers get a
// conflict naming the current holder.
func (s *assignmentService) Assign(actor Actor, input AssignInput) (*models.Assignment, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}

	assetRef := input.AssetID
	if assetRef == "" {
		assetRef = input.AssetCode
	}
	asset, err := s.assets.ResolveAssetByCode(assetRef)
	if err != nil {
		return nil, err
	}

	employeeRef := input.EmployeeID
	if employeeRef == "" {
		employeeRef = input.EmployeeCode
	}
	employee, err := s.employees.ResolveEmployee(employeeRef)
	if err != nil {
		return nil, err
	}

	var assignment *models.Assignment
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Asset{}).
			Where("id = ? AND status = ?", asset.ID, models.AssetStatusActive).
			Update("status", models.AssetStatusAssigned)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return s.assignConflict(tx, asset)
		}

		assignment = &models.Assignment{
			AssetID:           asset.ID,
			EmployeeID:        employee.ID,
			Status:            models.AssignmentStatusActive,
			Notes:             input.Notes,
			ConditionOnAssign: input.ConditionOnAssign,
			AssignedAt:        time.Now(),
		}
		if err := tx.Create(assignment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.AssignmentsTotal.WithLabelValues("assign").Inc()
	s.audit.Record(actor.ID, models.AuditActionAssignAsset, models.AuditEntityAssignment, assignment.ID, map[string]interface{}{
		"assetCode":    asset.AssetCode,
		"assetType":    asset.AssetType,
		"brand":        asset.Brand,
		"model":        asset.Model,
		"employeeId":   employee.EmployeeCode,
		"employeeName": employee.Name,
		"assignedAt":   assignment.AssignedAt,
		"assignedBy":   actor.ID,
	})

	assignment.Asset = asset
	assignment.Employee = employee
	return assignment, nil
}

// assignConflict builds the error for an asset that was not available:
// retired assets and race losers are distinguished, and the current holder
// is named when an active assignment exists.
func (s *assignmentService) assignConflict(tx *gorm.DB, asset *models.Asset) error {
	var fresh models.Asset
	if err := tx.Where("id = ?", asset.ID).First(&fresh).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if fresh.Status == models.AssetStatusRetired {
		return apperrors.WithMessage(apperrors.ErrAssetRetired,
			fmt.Sprintf("Asset %s is retired and cannot be assigned", fresh.AssetCode))
	}

	var current models.Assignment
	err := tx.Preload("Employee").
		Where("asset_id = ? AND status = ?", asset.ID, models.AssignmentStatusActive).
		First(&current).Error
	if err == nil && current.Employee != nil {
		return apperrors.WithMessage(apperrors.ErrAssetNotAvailable,
			fmt.Sprintf("Asset %s is assigned to employee %s (%s)",
				fresh.AssetCode, current.Employee.Name, current.Employee.EmployeeCode))
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return apperrors.WithMessage(apperrors.ErrAssetNotAvailable,
		fmt.Sprintf("Asset %s is not available for assignment", fresh.AssetCode))
}

// Return takes an asset back from its current holder. The assignment and
// asset rows change together in one transaction: the asset goes back to
// "active", or to "retired" when the retired flag is set (with a mandatory
// reason). Returning an already-returned assignment is a conflict.
func (s *assignmentService) Return(actor Actor, assignmentID string, input ReturnInput) (*models.Assignment, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}

	input.RetireReason = strings.TrimSpace(input.RetireReason)
	if input.Retired && input.RetireReason == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "retire reason is required when retiring an asset")
	}

	assignment, err := s.GetAssignmentByID(assignmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newStatus := models.AssignmentStatusReturned
	if input.Retired {
		newStatus = models.AssignmentStatusRetired
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":              newStatus,
			"returned_at":         now,
			"condition_on_return": input.ConditionOnReturn,
			"retired":             input.Retired,
			"retire_reason":       input.RetireReason,
		}
		if input.Notes != "" {
			updates["notes"] = input.Notes
		}

		res := tx.Model(&models.Assignment{}).
			Where("id = ? AND status = ?", assignment.ID, models.AssignmentStatusActive).
			Updates(updates)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrAssignmentNotActive
		}

		assetUpdates := map[string]interface{}{"status": models.AssetStatusActive}
		if input.Retired {
			assetUpdates["status"] = models.AssetStatusRetired
			assetUpdates["retire_reason"] = input.RetireReason
		}
		if err := tx.Model(&models.Asset{}).
			Where("id = ?", assignment.AssetID).
			Updates(assetUpdates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.Retired {
		metrics.AssignmentsTotal.WithLabelValues("retire").Inc()
	} else {
		metrics.AssignmentsTotal.WithLabelValues("return").Inc()
	}

	meta := map[string]interface{}{
		"returnedAt": now,
		"returnedBy": actor.ID,
		"retired":    input.Retired,
	}
	if assignment.Asset != nil {
		meta["assetCode"] = assignment.Asset.AssetCode
		meta["assetType"] = assignment.Asset.AssetType
		meta["brand"] = assignment.Asset.Brand
		meta["model"] = assignment.Asset.Model
	}
	if assignment.Employee != nil {
		meta["employeeId"] = assignment.Employee.EmployeeCode
		meta["employeeName"] = assignment.Employee.Name
	}
	if input.Retired {
		meta["retireReason"] = input.RetireReason
	}
	s.audit.Record(actor.ID, models.AuditActionReturnAsset, models.AuditEntityAssignment, assignment.ID, meta)

	return s.GetAssignmentByID(assignment.ID)
}

// AmendReturn corrects notes, condition, or the retired flag on an
// assignment that has already been returned. Toggling retired re-derives
// the asset status with the same coupling rule as Return; toggling it off
// restores the asset to "active" without reopening the assignment.
func (s *assignmentService) AmendReturn(actor Actor, assignmentID string, fields AmendReturnFields) (*models.Assignment, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}

	assignment, err := s.GetAssignmentByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.Status == models.AssignmentStatusActive {
		return nil, apperrors.WithMessage(apperrors.ErrAssignmentActive, "active assignments must be returned, not amended")
	}

	updates := make(map[string]interface{})
	if fields.Notes != nil {
		updates["notes"] = *fields.Notes
	}
	if fields.ConditionOnReturn != nil {
		updates["condition_on_return"] = *fields.ConditionOnReturn
	}

	toggleOn := fields.Retired != nil && *fields.Retired && !assignment.Retired
	toggleOff := fields.Retired != nil && !*fields.Retired && assignment.Retired

	if toggleOn {
		reason := ""
		if fields.RetireReason != nil {
			reason = strings.TrimSpace(*fields.RetireReason)
		}
		if reason == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "retire reason is required when retiring an asset")
		}
		updates["retired"] = true
		updates["retire_reason"] = reason
		updates["status"] = models.AssignmentStatusRetired
	} else if toggleOff {
		updates["retired"] = false
		updates["retire_reason"] = ""
		updates["status"] = models.AssignmentStatusReturned
	} else if fields.RetireReason != nil && assignment.Retired {
		reason := strings.TrimSpace(*fields.RetireReason)
		if reason == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "retire reason cannot be emptied on a retired assignment")
		}
		updates["retire_reason"] = reason
	}

	if len(updates) == 0 {
		return assignment, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if toggleOn {
			// The asset may have been re-assigned since this assignment was
			// returned; only an available asset can be retired after the fact.
			res := tx.Model(&models.Asset{}).
				Where("id = ? AND status = ?", assignment.AssetID, models.AssetStatusActive).
				Updates(map[string]interface{}{
					"status":        models.AssetStatusRetired,
					"retire_reason": updates["retire_reason"],
				})
			if res.Error != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.WithMessage(apperrors.ErrAssetNotAvailable, "asset is not available to retire")
			}
		}
		if toggleOff {
			res := tx.Model(&models.Asset{}).
				Where("id = ? AND status = ?", assignment.AssetID, models.AssetStatusRetired).
				Updates(map[string]interface{}{
					"status":        models.AssetStatusActive,
					"retire_reason": "",
				})
			if res.Error != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.WithMessage(apperrors.ErrAssetNotAvailable, "asset is no longer retired")
			}
		}
		if fields.RetireReason != nil && assignment.Retired && !toggleOff {
			if err := tx.Model(&models.Asset{}).
				Where("id = ?", assignment.AssetID).
				Update("retire_reason", updates["retire_reason"]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if err := tx.Model(&models.Assignment{}).
			Where("id = ?", assignment.ID).
			Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.AssignmentsTotal.WithLabelValues("amend").Inc()

	meta := map[string]interface{}{
		"changes":   updates,
		"amendedBy": actor.ID,
	}
	if assignment.Asset != nil {
		meta["assetCode"] = assignment.Asset.AssetCode
	}
	if assignment.Employee != nil {
		meta["employeeId"] = assignment.Employee.EmployeeCode
		meta["employeeName"] = assignment.Employee.Name
	}
	s.audit.Record(actor.ID, models.AuditActionUpdateReturnDetails, models.AuditEntityAssignment, assignment.ID, meta)

	return s.GetAssignmentByID(assignment.ID)
}

// GetAssignmentByID retrieves an assignment with its asset and employee.
func (s *assignmentService) GetAssignmentByID(assignmentID string) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := s.db.Preload("Asset").Preload("Employee").
		Where("id = ?", assignmentID).
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &assignment, nil
}

// ListAssignments retrieves a paginated, filtered list of assignments with
// their asset and employee preloaded, newest first.
func (s *assignmentService) ListAssignments(filter AssignmentFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Assignment], error) {
	page.Defaults()

	base := s.db.Model(&models.Assignment{})
	base = applyAssignmentFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assignments []models.Assignment
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Asset").Preload("Employee").
		Order("assigned_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assignments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyAssignmentFilters(q *gorm.DB, f AssignmentFilter) *gorm.DB {
	if f.Status != "" {
		var statuses []string
		for _, s := range strings.Split(f.Status, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
		if len(statuses) == 1 {
			q = q.Where("assignments.status = ?", statuses[0])
		} else if len(statuses) > 1 {
			q = q.Where("assignments.status IN ?", statuses)
		}
	}
	if f.AssetID != "" {
		q = q.Where("assignments.asset_id = ?", f.AssetID)
	}
	if f.AssignmentID != "" {
		q = q.Where("assignments.id = ?", f.AssignmentID)
	}
	if f.EmployeeID != "" {
		q = q.Where("assignments.employee_id = ?", f.EmployeeID)
	}
	if f.EmployeeName != "" {
		q = q.Joins("JOIN employees ON employees.id = assignments.employee_id").
			Where("employees.name LIKE ?", "%"+f.EmployeeName+"%")
	}
	if f.Retired != nil {
		q = q.Where("assignments.retired = ?", *f.Retired)
	}
	if f.AssignedFrom != nil {
		q = q.Where("assignments.assigned_at >= ?", *f.AssignedFrom)
	}
	if f.AssignedTo != nil {
		q = q.Where("assignments.assigned_at <= ?", *f.AssignedTo)
	}
	if f.ReturnedFrom != nil {
		q = q.Where("assignments.returned_at >= ?", *f.ReturnedFrom)
	}
	if f.ReturnedTo != nil {
		q = q.Where("assignments.returned_at <= ?", *f.ReturnedTo)
	}
	return q
}

// MyAssignments lists the calling employee's own assignments.
func (s *assignmentService) MyAssignments(employeeID string, page pagination.PageRequest) (*pagination.PageResponse[models.Assignment], error) {
	return s.ListAssignments(AssignmentFilter{EmployeeID: employeeID}, page)
}
