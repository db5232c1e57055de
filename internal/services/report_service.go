package services

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "assetdesk/internal/errors"
	"assetdesk/internal/models"
	"assetdesk/internal/pagination"
)

// reportService derives read-only views by joining audit log entries with
// live assignment and asset rows. Retirement data always comes from the
// assignment (the single source of truth for who retired what and why);
// the audit log supplies only the immutable timeline.
type reportService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, audit AuditServicer) ReportServicer {
	return &reportService{db: db, audit: audit}
}

// RetiredAssets lists retired assets merged with their terminal assignment
// so employee and reason fields come from the assignment rather than a
// stale audit snapshot.
func (s *reportService) RetiredAssets(page pagination.PageRequest) (*pagination.PageResponse[RetiredAssetRow], error) {
	page.Defaults()

	base := s.db.Model(&models.Asset{}).Where("status = ?", models.AssetStatusRetired)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := base.Scopes(pagination.Paginate(page)).
		Order("updated_at DESC").
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rows := make([]RetiredAssetRow, 0, len(assets))
	if len(assets) == 0 {
		result := pagination.NewPageResponse(rows, page.Page, page.PageSize, totalItems)
		return &result, nil
	}

	assetIDs := make([]string, 0, len(assets))
	for _, a := range assets {
		assetIDs = append(assetIDs, a.ID)
	}

	// Terminal assignments for the page of retired assets. Newest first, so
	// the first hit per asset is the one that retired it.
	var terminal []models.Assignment
	if err := s.db.Preload("Employee").
		Where("asset_id IN ? AND retired = ?", assetIDs, true).
		Order("returned_at DESC").
		Find(&terminal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byAsset := make(map[string]*models.Assignment, len(terminal))
	for i := range terminal {
		if _, seen := byAsset[terminal[i].AssetID]; !seen {
			byAsset[terminal[i].AssetID] = &terminal[i]
		}
	}

	for _, asset := range assets {
		row := RetiredAssetRow{
			Asset:        asset,
			RetireReason: asset.RetireReason,
			RetiredAt:    asset.UpdatedAt,
		}
		if a, ok := byAsset[asset.ID]; ok {
			row.EmployeeID = a.EmployeeID
			row.ReturnedAt = a.ReturnedAt
			if a.RetireReason != "" {
				row.RetireReason = a.RetireReason
			}
			if a.Employee != nil {
				row.EmployeeCode = a.Employee.EmployeeCode
				row.EmployeeName = a.Employee.Name
			}
		}
		rows = append(rows, row)
	}

	result := pagination.NewPageResponse(rows, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ExportLogs flattens a filtered slice of the audit log into tabular rows
// with a fixed column schema per action type. The RETIRE_ASSET view exports
// the merged retired-asset rows instead of raw audit entries, because
// retirement is recorded as RETURN_ASSET with a flag inside metadata.
func (s *reportService) ExportLogs(action string, page pagination.PageRequest) (*ExportTable, error) {
	if action == models.AuditActionRetireAsset {
		return s.exportRetired(page)
	}

	entries, err := s.audit.List(AuditFilter{Action: action}, page)
	if err != nil {
		return nil, err
	}

	table := &ExportTable{}
	switch action {
	case models.AuditActionAssignAsset:
		table.Headers = []string{"createdAt", "assetCode", "employeeId", "employeeName", "assignedAt", "assignedBy"}
		for _, e := range entries.Data {
			m := parseMetadata(e.Metadata)
			table.Rows = append(table.Rows, []string{
				e.CreatedAt.UTC().Format(time.RFC3339),
				metaString(m, "assetCode", e.EntityID),
				metaString(m, "employeeId", ""),
				metaString(m, "employeeName", ""),
				metaString(m, "assignedAt", ""),
				metaString(m, "assignedBy", ""),
			})
		}
	case models.AuditActionReturnAsset:
		table.Headers = []string{"createdAt", "assetCode", "employeeId", "employeeName", "returnedAt", "returnedBy"}
		for _, e := range entries.Data {
			m := parseMetadata(e.Metadata)
			table.Rows = append(table.Rows, []string{
				e.CreatedAt.UTC().Format(time.RFC3339),
				metaString(m, "assetCode", e.EntityID),
				metaString(m, "employeeId", ""),
				metaString(m, "employeeName", ""),
				metaString(m, "returnedAt", ""),
				metaString(m, "returnedBy", ""),
			})
		}
	case models.AuditActionCreateAsset:
		table.Headers = []string{"createdAt", "assetId", "assetType", "brand", "model", "status"}
		for _, e := range entries.Data {
			m := parseMetadata(e.Metadata)
			table.Rows = append(table.Rows, []string{
				e.CreatedAt.UTC().Format(time.RFC3339),
				metaString(m, "assetId", e.EntityID),
				metaString(m, "assetType", ""),
				metaString(m, "brand", ""),
				metaString(m, "model", ""),
				metaString(m, "status", ""),
			})
		}
	default:
		table.Headers = []string{"createdAt", "action", "entityType", "entityId", "userId"}
		for _, e := range entries.Data {
			table.Rows = append(table.Rows, []string{
				e.CreatedAt.UTC().Format(time.RFC3339),
				e.Action,
				e.EntityType,
				e.EntityID,
				e.UserID,
			})
		}
	}
	return table, nil
}

func (s *reportService) exportRetired(page pagination.PageRequest) (*ExportTable, error) {
	retired, err := s.RetiredAssets(page)
	if err != nil {
		return nil, err
	}

	table := &ExportTable{
		Headers: []string{"updatedAt", "assetCode", "assetType", "brand", "model", "employeeName", "retireReason"},
	}
	for _, r := range retired.Data {
		table.Rows = append(table.Rows, []string{
			r.RetiredAt.UTC().Format(time.RFC3339),
			r.Asset.AssetCode,
			string(r.Asset.AssetType),
			r.Asset.Brand,
			r.Asset.Model,
			r.EmployeeName,
			r.RetireReason,
		})
	}
	return table, nil
}

// MonthlyReport aggregates lifecycle transitions per calendar month for the
// given year, derived purely from the audit log. Bucketing happens in Go so
// the same query works on both postgres and sqlite.
func (s *reportService) MonthlyReport(year int) ([]MonthlyActivity, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var entries []models.AuditLog
	if err := s.db.
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	months := make([]MonthlyActivity, 12)
	for i := range months {
		months[i].Month = fmt.Sprintf("%04d-%02d", year, i+1)
	}

	for _, e := range entries {
		bucket := &months[int(e.CreatedAt.Month())-1]
		switch e.Action {
		case models.AuditActionCreateAsset:
			bucket.Created++
		case models.AuditActionAssignAsset:
			bucket.Assigned++
		case models.AuditActionReturnAsset:
			m := parseMetadata(e.Metadata)
			if retired, ok := m["retired"].(bool); ok && retired {
				bucket.Retired++
			} else {
				bucket.Returned++
			}
		}
	}
	return months, nil
}

// parseMetadata decodes an audit metadata snapshot, tolerating empty or
// malformed payloads.
func parseMetadata(raw string) map[string]interface{} {
	if raw == "" {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string]interface{}{}
	}
	return m
}

func metaString(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key]; ok && v != nil {
		switch s := v.(type) {
		case string:
			return s
		default:
			return fmt.Sprintf("%v", v)
		}
	}
	return fallback
}
