package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "assetdesk/internal/errors"
	"assetdesk/internal/models"
	"assetdesk/internal/pagination"
	"assetdesk/internal/uuid"
)

// assetService owns asset records and their direct-field updates. Status
// transitions caused by assignment activity go through the assignment
// service instead.
type assetService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB, audit AuditServicer) AssetServicer {
	return &assetService{db: db, audit: audit}
}

// requireManager rejects actors that may not mutate assets or assignments.
func requireManager(actor Actor) error {
	if !actor.Role.CanManageAssets() {
		return apperrors.ErrForbidden
	}
	return nil
}

// CreateAsset registers a new asset with initial status "active".
func (s *assetService) CreateAsset(actor Actor, input AssetCreateInput) (*models.Asset, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}

	input.AssetCode = strings.TrimSpace(input.AssetCode)
	input.SerialNumber = strings.TrimSpace(input.SerialNumber)
	if input.AssetCode == "" || input.SerialNumber == "" || input.AssetType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset code, serial number, and asset type are required")
	}

	var count int64
	if err := s.db.Model(&models.Asset{}).
		Where("asset_code = ? OR serial_number = ?", input.AssetCode, input.SerialNumber).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateAsset
	}

	asset := &models.Asset{
		AssetCode:      input.AssetCode,
		SerialNumber:   input.SerialNumber,
		AssetType:      input.AssetType,
		TypeDetail:     input.TypeDetail,
		Brand:          input.Brand,
		Model:          input.Model,
		CPU:            input.CPU,
		RAM:            input.RAM,
		Storage:        input.Storage,
		OS:             input.OS,
		GPU:            input.GPU,
		Location:       input.Location,
		PurchaseDate:   input.PurchaseDate,
		WarrantyExpiry: input.WarrantyExpiry,
		Status:         models.AssetStatusActive,
	}
	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Record(actor.ID, models.AuditActionCreateAsset, models.AuditEntityAsset, asset.ID, map[string]interface{}{
		"assetId":      asset.AssetCode,
		"serialNumber": asset.SerialNumber,
		"assetType":    asset.AssetType,
		"brand":        asset.Brand,
		"model":        asset.Model,
		"status":       asset.Status,
	})

	return asset, nil
}

// UpdateAsset applies field-level updates. Retirement through this path is
// an administrative override and requires a reason; a retired asset never
// transitions back to another status here.
func (s *assetService) UpdateAsset(actor Actor, assetID string, fields AssetUpdateFields) (*models.Asset, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}

	asset, err := s.GetAssetByID(assetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if fields.AssetCode != nil && *fields.AssetCode != "" {
		updates["asset_code"] = strings.TrimSpace(*fields.AssetCode)
	}
	if fields.SerialNumber != nil && *fields.SerialNumber != "" {
		updates["serial_number"] = strings.TrimSpace(*fields.SerialNumber)
	}
	if fields.AssetType != nil {
		updates["asset_type"] = *fields.AssetType
	}
	if fields.TypeDetail != nil {
		updates["type_detail"] = *fields.TypeDetail
	}
	if fields.Brand != nil {
		updates["brand"] = *fields.Brand
	}
	if fields.Model != nil {
		updates["model"] = *fields.Model
	}
	if fields.CPU != nil {
		updates["cpu"] = *fields.CPU
	}
	if fields.RAM != nil {
		updates["ram"] = *fields.RAM
	}
	if fields.Storage != nil {
		updates["storage"] = *fields.Storage
	}
	if fields.OS != nil {
		updates["os"] = *fields.OS
	}
	if fields.GPU != nil {
		updates["gpu"] = *fields.GPU
	}
	if fields.Location != nil {
		updates["location"] = *fields.Location
	}
	if fields.PurchaseDate != nil {
		updates["purchase_date"] = *fields.PurchaseDate
	}
	if fields.WarrantyExpiry != nil {
		updates["warranty_expiry"] = *fields.WarrantyExpiry
	}

	if fields.Status != nil && *fields.Status != asset.Status {
		if asset.Status == models.AssetStatusRetired {
			return nil, apperrors.ErrAssetRetired
		}
		switch *fields.Status {
		case models.AssetStatusRetired:
			reason := ""
			if fields.RetireReason != nil {
				reason = strings.TrimSpace(*fields.RetireReason)
			}
			if reason == "" {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "retire reason is required when retiring an asset")
			}
			if asset.Status == models.AssetStatusAssigned {
				return nil, apperrors.WithMessage(apperrors.ErrAssetNotAvailable, "asset must be returned before it can be retired")
			}
			updates["status"] = models.AssetStatusRetired
			updates["retire_reason"] = reason
		default:
			// active<->assigned is owned by the assignment ledger
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset status can only be changed through assignment operations or retirement")
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(asset).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", asset.ID).First(asset).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		s.audit.Record(actor.ID, models.AuditActionUpdateAsset, models.AuditEntityAsset, asset.ID, map[string]interface{}{
			"assetId": asset.AssetCode,
			"changes": updates,
			"status":  asset.Status,
		})
	}

	return asset, nil
}

// GetAssetByID retrieves an asset by internal ID.
func (s *assetService) GetAssetByID(assetID string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Where("id = ?", assetID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// ResolveAssetByCode looks up an asset by internal ID, asset code, or
// serial number, so callers can supply whichever identifier they have.
func (s *assetService) ResolveAssetByCode(code string) (*models.Asset, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset id or code is required")
	}
	if uuid.IsValid(code) {
		return s.GetAssetByID(code)
	}

	var asset models.Asset
	if err := s.db.Where("asset_code = ? OR serial_number = ?", code, code).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// ListAssets retrieves a paginated, filtered list of assets, newest first.
func (s *assetService) ListAssets(filter AssetFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error) {
	page.Defaults()

	base := s.db.Model(&models.Asset{})
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + q + "%"
		base = base.Where(
			"asset_code LIKE ? OR serial_number LIKE ? OR brand LIKE ? OR model LIKE ?",
			like, like, like, like,
		)
	}
	if filter.AssetType != nil {
		base = base.Where("asset_type = ?", *filter.AssetType)
	}
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Summary returns asset counts by status. The counts reflect committed
// state at call time; nothing is cached.
func (s *assetService) Summary() (*AssetSummary, error) {
	type statusCount struct {
		Status models.AssetStatus
		Count  int64
	}
	var counts []statusCount
	if err := s.db.Model(&models.Asset{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &AssetSummary{}
	for _, c := range counts {
		switch c.Status {
		case models.AssetStatusActive:
			summary.Active = c.Count
		case models.AssetStatusAssigned:
			summary.Assigned = c.Count
		case models.AssetStatusRetired:
			summary.Retired = c.Count
		}
		summary.Total += c.Count
	}
	return summary, nil
}
