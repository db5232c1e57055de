package models

import "time"

// AssetType classifies the kind of equipment being tracked.
type AssetType string

const (
	AssetTypeLaptop   AssetType = "laptop"
	AssetTypeMouse    AssetType = "mouse"
	AssetTypeKeyboard AssetType = "keyboard"
	AssetTypeStand    AssetType = "stand"
	AssetTypeOther    AssetType = "other"
)

// AssetStatus is the lifecycle state of an asset.
//
// An asset is "assigned" exactly when one active assignment references it,
// and "retired" is terminal: it can only be reached by returning the last
// active assignment with the retired flag (or an explicit admin retirement),
// and never transitions back to "active".
type AssetStatus string

const (
	AssetStatusActive   AssetStatus = "active"
	AssetStatusAssigned AssetStatus = "assigned"
	AssetStatusRetired  AssetStatus = "retired"
)

// Asset represents a tracked piece of physical IT equipment.
type Asset struct {
	Base
	AssetCode    string    `gorm:"uniqueIndex;not null" json:"asset_code"`
	SerialNumber string    `gorm:"uniqueIndex;not null" json:"serial_number"`
	AssetType    AssetType `gorm:"not null;index" json:"asset_type"`
	TypeDetail   string    `json:"type_detail,omitempty"` // free text when asset_type is "other"
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`

	// Laptop hardware fields
	CPU     string `json:"cpu,omitempty"`
	RAM     string `json:"ram,omitempty"`
	Storage string `json:"storage,omitempty"`
	OS      string `json:"os,omitempty"`
	GPU     string `json:"gpu,omitempty"`

	Location       string     `json:"location,omitempty"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
	WarrantyExpiry *time.Time `json:"warranty_expiry,omitempty"`

	Status       AssetStatus `gorm:"not null;default:'active';index" json:"status"`
	RetireReason string      `json:"retire_reason,omitempty"`

	Assignments []Assignment `gorm:"foreignKey:AssetID" json:"assignments,omitempty"`
}
