package models

import "time"

// AssignmentStatus is the state of a custody record. "retired" is a
// refinement of "returned": a retired assignment always has ReturnedAt set
// and Retired true.
type AssignmentStatus string

const (
	AssignmentStatusActive   AssignmentStatus = "active"
	AssignmentStatusReturned AssignmentStatus = "returned"
	AssignmentStatusRetired  AssignmentStatus = "retired"
)

// Assignment represents a time-bounded custody relationship between one
// asset and one employee. At most one active assignment exists per asset.
type Assignment struct {
	Base
	AssetID    string `gorm:"not null;index" json:"asset_id"`
	EmployeeID string `gorm:"not null;index" json:"employee_id"`

	Status            AssignmentStatus `gorm:"not null;default:'active';index" json:"status"`
	Notes             string           `json:"notes,omitempty"`
	ConditionOnAssign string           `json:"condition_on_assign,omitempty"`
	ConditionOnReturn string           `json:"condition_on_return,omitempty"`

	AssignedAt time.Time  `gorm:"not null" json:"assigned_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`

	Retired      bool   `gorm:"default:false" json:"retired"`
	RetireReason string `json:"retire_reason,omitempty"`

	Asset    *Asset    `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}
