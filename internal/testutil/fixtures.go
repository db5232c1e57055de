package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"assetdesk/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestEmployee creates an active employee with the given role.
func CreateTestEmployee(t *testing.T, db *gorm.DB, role models.Role) *models.Employee {
	t.Helper()

	n := nextID()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	employee := &models.Employee{
		EmployeeCode: fmt.Sprintf("E%03d", n),
		Name:         fmt.Sprintf("Test Employee %d", n),
		Email:        fmt.Sprintf("employee%d@test.com", n),
		Password:     string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("failed to create test employee: %v", err)
	}
	return employee
}

// CreateTestAsset creates an available laptop asset.
func CreateTestAsset(t *testing.T, db *gorm.DB) *models.Asset {
	t.Helper()
	return CreateTestAssetWithCode(t, db, fmt.Sprintf("LAP-%03d", nextID()))
}

// CreateTestAssetWithCode creates an available asset with the given code.
func CreateTestAssetWithCode(t *testing.T, db *gorm.DB, code string) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		AssetCode:    code,
		SerialNumber: fmt.Sprintf("SN-%s-%d", code, nextID()),
		AssetType:    models.AssetTypeLaptop,
		Brand:        "Lenovo",
		Model:        "ThinkPad T14",
		Status:       models.AssetStatusActive,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestAssignment creates an active assignment and marks the asset assigned.
func CreateTestAssignment(t *testing.T, db *gorm.DB, asset *models.Asset, employee *models.Employee) *models.Assignment {
	t.Helper()

	assignment := &models.Assignment{
		AssetID:    asset.ID,
		EmployeeID: employee.ID,
		Status:     models.AssignmentStatusActive,
		AssignedAt: time.Now(),
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("failed to create test assignment: %v", err)
	}
	if err := db.Model(asset).Update("status", models.AssetStatusAssigned).Error; err != nil {
		t.Fatalf("failed to mark test asset assigned: %v", err)
	}
	return assignment
}
