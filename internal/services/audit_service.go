package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "assetdesk/internal/errors"
	"assetdesk/internal/logger"
	"assetdesk/internal/metrics"
	"assetdesk/internal/models"
	"assetdesk/internal/pagination"
)

// auditService handles audit log recording and reads. The log is
// append-only: no update or delete exists anywhere in this service.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Record appends an audit event. It runs after the primary mutation has
// committed and never propagates errors: a failed append is logged and
// counted so the primary state change stands regardless.
func (s *auditService) Record(actorID, action, entityType, entityID string, metadata map[string]interface{}) {
	var metadataJSON string
	if metadata != nil {
		data, err := json.Marshal(metadata)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit metadata", "error", err, "action", action)
			metadataJSON = "{}"
		} else {
			metadataJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:     actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadataJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		metrics.AuditAppendFailures.Inc()
		logger.Get().Errorw("failed to append audit log entry",
			"error", err,
			"user_id", actorID,
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
		)
	}
}

// List retrieves a paginated, filtered slice of the audit log, newest first.
func (s *auditService) List(filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
	page.Defaults()

	base := s.db.Model(&models.AuditLog{})
	if filter.Action != "" {
		base = base.Where("action = ?", filter.Action)
	}
	if filter.EntityID != "" {
		base = base.Where("entity_id = ?", filter.EntityID)
	}
	if filter.From != nil {
		base = base.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		base = base.Where("created_at <= ?", *filter.To)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.AuditLog
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
