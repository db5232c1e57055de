package services

import (
	"time"

	"assetdesk/internal/models"
	"assetdesk/internal/pagination"
)

// Actor is the already-authenticated identity performing an operation.
// Authentication itself lives at the HTTP layer; services only check that
// mutating calls carry an authorized role and stamp the actor into the
// audit trail.
type Actor struct {
	ID   string
	Role models.Role
}

// AssetCreateInput holds the fields accepted when registering an asset.
type AssetCreateInput struct {
	AssetCode      string
	SerialNumber   string
	AssetType      models.AssetType
	TypeDetail     string
	Brand          string
	Model          string
	CPU            string
	RAM            string
	Storage        string
	OS             string
	GPU            string
	Location       string
	PurchaseDate   *time.Time
	WarrantyExpiry *time.Time
}

// AssetUpdateFields holds optional field-level updates for an asset.
// A nil pointer leaves the field untouched.
type AssetUpdateFields struct {
	AssetCode      *string
	SerialNumber   *string
	AssetType      *models.AssetType
	TypeDetail     *string
	Brand          *string
	Model          *string
	CPU            *string
	RAM            *string
	Storage        *string
	OS             *string
	GPU            *string
	Location       *string
	PurchaseDate   *time.Time
	WarrantyExpiry *time.Time
	Status         *models.AssetStatus
	RetireReason   *string
}

// AssetFilter holds optional filter parameters for listing assets.
type AssetFilter struct {
	Query     string // substring over asset_code/serial_number/brand/model
	AssetType *models.AssetType
	Status    *models.AssetStatus
}

// AssetSummary contains asset counts by status for dashboard cards.
type AssetSummary struct {
	Active   int64 `json:"active"`
	Assigned int64 `json:"assigned"`
	Retired  int64 `json:"retired"`
	Total    int64 `json:"total"`
}

// AssetServicer defines the contract for the asset registry.
type AssetServicer interface {
	CreateAsset(actor Actor, input AssetCreateInput) (*models.Asset, error)
	UpdateAsset(actor Actor, assetID string, fields AssetUpdateFields) (*models.Asset, error)
	GetAssetByID(assetID string) (*models.Asset, error)
	ResolveAssetByCode(code string) (*models.Asset, error)
	ListAssets(filter AssetFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error)
	Summary() (*AssetSummary, error)
}

// AssignInput holds the parameters for handing an asset to an employee.
// The asset may be identified by internal ID or by business code
// (asset code or serial number); likewise the employee.
type AssignInput struct {
	AssetID           string
	AssetCode         string
	EmployeeID        string
	EmployeeCode      string
	Notes             string
	ConditionOnAssign string
}

// ReturnInput holds the parameters for taking an asset back.
type ReturnInput struct {
	Notes             string
	ConditionOnReturn string
	Retired           bool
	RetireReason      string
}

// AmendReturnFields holds post-hoc corrections to a non-active assignment.
type AmendReturnFields struct {
	Notes             *string
	ConditionOnReturn *string
	Retired           *bool
	RetireReason      *string
}

// AssignmentFilter holds optional filter parameters for listing assignments.
type AssignmentFilter struct {
	Status       string // single status or comma-joined combination
	AssetID      string
	AssignmentID string
	EmployeeID   string
	EmployeeName string // substring match
	Retired      *bool
	AssignedFrom *time.Time
	AssignedTo   *time.Time
	ReturnedFrom *time.Time
	ReturnedTo   *time.Time
}

// AssignmentServicer defines the contract for the assignment ledger,
// the state-machine core that keeps asset status and assignments in sync.
type AssignmentServicer interface {
	Assign(actor Actor, input AssignInput) (*models.Assignment, error)
	Return(actor Actor, assignmentID string, input ReturnInput) (*models.Assignment, error)
	AmendReturn(actor Actor, assignmentID string, fields AmendReturnFields) (*models.Assignment, error)
	ListAssignments(filter AssignmentFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Assignment], error)
	GetAssignmentByID(assignmentID string) (*models.Assignment, error)
	MyAssignments(employeeID string, page pagination.PageRequest) (*pagination.PageResponse[models.Assignment], error)
}

// AuditFilter holds optional filter parameters for reading the audit log.
type AuditFilter struct {
	Action   string
	EntityID string
	From     *time.Time
	To       *time.Time
}

// AuditServicer defines the contract for the append-only audit log.
// Record never rejects for business reasons and never propagates storage
// errors; List is the only read surface. No update or delete exists.
type AuditServicer interface {
	Record(actorID, action, entityType, entityID string, metadata map[string]interface{})
	List(filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}

// RetiredAssetRow merges a retired asset with its terminal assignment so the
// employee and reason come from the assignment, not from audit metadata.
type RetiredAssetRow struct {
	Asset        models.Asset `json:"asset"`
	EmployeeID   string       `json:"employee_id,omitempty"`
	EmployeeCode string       `json:"employee_code,omitempty"`
	EmployeeName string       `json:"employee_name,omitempty"`
	ReturnedAt   *time.Time   `json:"returned_at,omitempty"`
	RetireReason string       `json:"retire_reason,omitempty"`
	RetiredAt    time.Time    `json:"retired_at"`
}

// ExportTable is a flattened slice of report data with a fixed column
// schema per action type, ready for CSV or spreadsheet rendering.
type ExportTable struct {
	Headers []string
	Rows    [][]string
}

// MonthlyActivity aggregates lifecycle transitions for one calendar month.
type MonthlyActivity struct {
	Month    string `json:"month"` // "2026-01"
	Created  int    `json:"created"`
	Assigned int    `json:"assigned"`
	Returned int    `json:"returned"`
	Retired  int    `json:"retired"`
}

// ReportServicer derives read-only views from the audit log and the live
// asset/assignment tables. No report ever mutates state.
type ReportServicer interface {
	RetiredAssets(page pagination.PageRequest) (*pagination.PageResponse[RetiredAssetRow], error)
	ExportLogs(action string, page pagination.PageRequest) (*ExportTable, error)
	MonthlyReport(year int) ([]MonthlyActivity, error)
}

// EmployeeServicer defines the contract for the staff directory and the
// authentication collaborator.
type EmployeeServicer interface {
	CreateEmployee(actor Actor, code, name, email, password, department string, role models.Role) (*models.Employee, error)
	GetEmployeeByID(id string) (*models.Employee, error)
	GetEmployeeByEmail(email string) (*models.Employee, error)
	ResolveEmployee(idOrCode string) (*models.Employee, error)
	VerifyPassword(employee *models.Employee, password string) bool
}
