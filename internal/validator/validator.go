// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("asset_type", validateAssetType)
		_ = v.RegisterValidation("asset_status", validateAssetStatus)
		_ = v.RegisterValidation("assignment_status", validateAssignmentStatus)
		_ = v.RegisterValidation("employee_role", validateEmployeeRole)
		_ = v.RegisterValidation("audit_action", validateAuditAction)
	}
}

func validateAssetType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "laptop", "mouse", "keyboard", "stand", "other":
		return true
	}
	return false
}

func validateAssetStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "assigned", "retired":
		return true
	}
	return false
}

func validateAssignmentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "returned", "retired":
		return true
	}
	return false
}

func validateEmployeeRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "it_admin", "employee":
		return true
	}
	return false
}

func validateAuditAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "CREATE_ASSET", "UPDATE_ASSET", "ASSIGN_ASSET", "RETURN_ASSET",
		"UPDATE_RETURN_DETAILS", "RETIRE_ASSET":
		return true
	}
	return false
}
