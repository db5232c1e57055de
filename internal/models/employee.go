package models

import "time"

// Role controls access to mutating operations. Only admins and IT admins
// may touch assets and assignments; regular employees get read-only access
// to their own equipment.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleITAdmin  Role = "it_admin"
	RoleEmployee Role = "employee"
)

// CanManageAssets reports whether the role is allowed to call mutating
// asset and assignment operations.
func (r Role) CanManageAssets() bool {
	return r == RoleAdmin || r == RoleITAdmin
}

// Employee represents a staff member who can hold equipment and, depending
// on role, operate the asset tracker.
type Employee struct {
	Base
	EmployeeCode string     `gorm:"uniqueIndex;not null" json:"employee_code"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"not null" json:"-"`
	Role         Role       `gorm:"not null;default:'employee'" json:"role"`
	Department   string     `json:"department,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	Assignments []Assignment `gorm:"foreignKey:EmployeeID" json:"assignments,omitempty"`
}
