package models

// Audit actions recorded for every tracked mutation.
//
// Retirement is not a first-class action: returning with the retired flag is
// recorded as RETURN_ASSET with retired details inside the metadata snapshot,
// and reports recover retirement data by joining on the assignment instead
// of trusting the action label.
const (
	AuditActionCreateAsset         = "CREATE_ASSET"
	AuditActionUpdateAsset         = "UPDATE_ASSET"
	AuditActionAssignAsset         = "ASSIGN_ASSET"
	AuditActionReturnAsset         = "RETURN_ASSET"
	AuditActionUpdateReturnDetails = "UPDATE_RETURN_DETAILS"
	AuditActionRetireAsset         = "RETIRE_ASSET"
)

// Entity types referenced by audit entries.
const (
	AuditEntityAsset      = "asset"
	AuditEntityAssignment = "assignment"
)

// AuditLog is an append-only record of one mutation. Entries are never
// updated or deleted; Metadata carries a JSON snapshot of the relevant
// fields at the time of the action so history survives later changes to
// the live asset and employee rows.
type AuditLog struct {
	Base
	Action     string `gorm:"not null;index:idx_audit_action_created,priority:1" json:"action"`
	EntityType string `gorm:"not null" json:"entity_type"`
	EntityID   string `gorm:"index" json:"entity_id"`
	UserID     string `gorm:"index" json:"user_id"`
	Metadata   string `json:"metadata,omitempty"`
}
