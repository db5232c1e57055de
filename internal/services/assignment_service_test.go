package services

import (
	"strings"
	"sync"
	"testing"
	"time"

	"assetdesk/internal/models"
	"assetdesk/internal/pagination"
	"assetdesk/internal/testutil"

	"gorm.io/gorm"
)

func newTestAssignmentService(db *gorm.DB) AssignmentServicer {
	audit := NewAuditService(db)
	return NewAssignmentService(db, NewAssetService(db, audit), NewEmployeeService(db), audit)
}

func manager(t *testing.T, db *gorm.DB) Actor {
	t.Helper()
	admin := testutil.CreateTestEmployee(t, db, models.RoleITAdmin)
	return Actor{ID: admin.ID, Role: admin.Role}
}

func TestAssign(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)

		assignment, err := svc.Assign(actor, AssignInput{AssetID: asset.ID, EmployeeID: employee.ID, Notes: "onboarding"})
		testutil.AssertNoError(t, err)

		if assignment.Status != models.AssignmentStatusActive {
			t.Errorf("expected status active, got %s", assignment.Status)
		}
		if assignment.EmployeeID != employee.ID {
			t.Errorf("expected employee %s, got %s", employee.ID, assignment.EmployeeID)
		}
		if assignment.AssignedAt.IsZero() {
			t.Error("expected assigned_at to be set")
		}

		var fresh models.Asset
		if err := db.First(&fresh, "id = ?", asset.ID).Error; err != nil {
			t.Fatalf("failed to reload asset: %v", err)
		}
		if fresh.Status != models.AssetStatusAssigned {
			t.Errorf("expected asset status assigned, got %s", fresh.Status)
		}
	})

	t.Run("by_asset_code_and_employee_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAssetWithCode(t, db, "LAP-CODE")
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)

		assignment, err := svc.Assign(actor, AssignInput{AssetCode: "LAP-CODE", EmployeeID: employee.EmployeeCode})
		testutil.AssertNoError(t, err)

		if assignment.AssetID != asset.ID {
			t.Errorf("expected asset %s, got %s", asset.ID, assignment.AssetID)
		}
	})

	t.Run("already_assigned_names_holder", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		holder := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		other := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		testutil.CreateTestAssignment(t, db, asset, holder)

		_, err := svc.Assign(actor, AssignInput{AssetID: asset.ID, EmployeeID: other.ID})
		testutil.AssertAppError(t, err, "ASSET_NOT_AVAILABLE")
		if !strings.Contains(err.Error(), holder.EmployeeCode) {
			t.Errorf("expected conflict message to name holder %s, got %q", holder.EmployeeCode, err.Error())
		}
	})

	t.Run("retired_asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		if err := db.Model(asset).Updates(map[string]interface{}{
			"status": models.AssetStatusRetired, "retire_reason": "water damage",
		}).Error; err != nil {
			t.Fatalf("failed to retire asset: %v", err)
		}

		_, err := svc.Assign(actor, AssignInput{AssetID: asset.ID, EmployeeID: employee.ID})
		testutil.AssertAppError(t, err, "ASSET_RETIRED")
	})

	t.Run("unknown_asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)

		_, err := svc.Assign(actor, AssignInput{AssetCode: "LAP-MISSING", EmployeeID: employee.ID})
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})

	t.Run("unknown_employee", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)

		_, err := svc.Assign(actor, AssignInput{AssetID: asset.ID, EmployeeCode: "E999"})
		testutil.AssertAppError(t, err, "EMPLOYEE_NOT_FOUND")
	})

	t.Run("forbidden_for_employee_role", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)

		_, err := svc.Assign(Actor{ID: employee.ID, Role: employee.Role}, AssignInput{AssetID: asset.ID, EmployeeID: employee.ID})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("writes_audit_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)

		assignment, err := svc.Assign(actor, AssignInput{AssetID: asset.ID, EmployeeID: employee.ID})
		testutil.AssertNoError(t, err)

		var entry models.AuditLog
		if err := db.Where("action = ?", models.AuditActionAssignAsset).First(&entry).Error; err != nil {
			t.Fatalf("expected ASSIGN_ASSET audit entry: %v", err)
		}
		if entry.EntityID != assignment.ID {
			t.Errorf("expected entity %s, got %s", assignment.ID, entry.EntityID)
		}
		if entry.UserID != actor.ID {
			t.Errorf("expected actor %s, got %s", actor.ID, entry.UserID)
		}
		if !strings.Contains(entry.Metadata, employee.Name) {
			t.Errorf("expected metadata snapshot to contain employee name, got %s", entry.Metadata)
		}
	})
}

func TestAssignConcurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestAssignmentService(db)
	actor := manager(t, db)
	asset := testutil.CreateTestAsset(t, db)

	const workers = 8
	employees := make([]*models.Employee, workers)
	for i := range employees {
		employees[i] = testutil.CreateTestEmployee(t, db, models.RoleEmployee)
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Assign(actor, AssignInput{AssetID: asset.ID, EmployeeID: employees[i].ID})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			testutil.AssertAppError(t, err, "ASSET_NOT_AVAILABLE")
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}

	var active int64
	if err := db.Model(&models.Assignment{}).
		Where("asset_id = ? AND status = ?", asset.ID, models.AssignmentStatusActive).
		Count(&active).Error; err != nil {
		t.Fatalf("failed to count active assignments: %v", err)
	}
	if active != 1 {
		t.Fatalf("expected exactly one active assignment, got %d", active)
	}
}

func TestReturn(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		assignment := testutil.CreateTestAssignment(t, db, asset, employee)

		returned, err := svc.Return(actor, assignment.ID, ReturnInput{ConditionOnReturn: "good"})
		testutil.AssertNoError(t, err)

		if returned.Status != models.AssignmentStatusReturned {
			t.Errorf("expected status returned, got %s", returned.Status)
		}
		if returned.ReturnedAt == nil {
			t.Error("expected returned_at to be set")
		}
		if returned.ConditionOnReturn != "good" {
			t.Errorf("expected condition good, got %s", returned.ConditionOnReturn)
		}

		var fresh models.Asset
		if err := db.First(&fresh, "id = ?", asset.ID).Error; err != nil {
			t.Fatalf("failed to reload asset: %v", err)
		}
		if fresh.Status != models.AssetStatusActive {
			t.Errorf("expected asset back to active, got %s", fresh.Status)
		}
	})

	t.Run("retire_on_return", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		assignment := testutil.CreateTestAssignment(t, db, asset, employee)

		returned, err := svc.Return(actor, assignment.ID, ReturnInput{Retired: true, RetireReason: "screen cracked"})
		testutil.AssertNoError(t, err)

		if returned.Status != models.AssignmentStatusRetired {
			t.Errorf("expected status retired, got %s", returned.Status)
		}
		if !returned.Retired {
			t.Error("expected retired flag to be set")
		}

		var fresh models.Asset
		if err := db.First(&fresh, "id = ?", asset.ID).Error; err != nil {
			t.Fatalf("failed to reload asset: %v", err)
		}
		if fresh.Status != models.AssetStatusRetired {
			t.Errorf("expected asset retired, got %s", fresh.Status)
		}
		if fresh.RetireReason != "screen cracked" {
			t.Errorf("expected retire reason on asset, got %q", fresh.RetireReason)
		}

		var entry models.AuditLog
		if err := db.Where("action = ?", models.AuditActionReturnAsset).First(&entry).Error; err != nil {
			t.Fatalf("expected RETURN_ASSET audit entry: %v", err)
		}
		if !strings.Contains(entry.Metadata, `"retired":true`) {
			t.Errorf("expected retirement recorded in metadata, got %s", entry.Metadata)
		}
	})

	t.Run("retire_without_reason", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		assignment := testutil.CreateTestAssignment(t, db, asset, employee)

		_, err := svc.Return(actor, assignment.ID, ReturnInput{Retired: true, RetireReason: "  "})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("double_return", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		assignment := testutil.CreateTestAssignment(t, db, asset, employee)

		_, err := svc.Return(actor, assignment.ID, ReturnInput{})
		testutil.AssertNoError(t, err)

		_, err = svc.Return(actor, assignment.ID, ReturnInput{})
		testutil.AssertAppError(t, err, "ASSIGNMENT_NOT_ACTIVE")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)

		_, err := svc.Return(actor, "0198c5a0-0000-7000-8000-000000000000", ReturnInput{})
		testutil.AssertAppError(t, err, "ASSIGNMENT_NOT_FOUND")
	})

	t.Run("asset_reassignable_after_return", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		first := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		second := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		assignment := testutil.CreateTestAssignment(t, db, asset, first)

		_, err := svc.Return(actor, assignment.ID, ReturnInput{})
		testutil.AssertNoError(t, err)

		next, err := svc.Assign(actor, AssignInput{AssetID: asset.ID, EmployeeID: second.ID})
		testutil.AssertNoError(t, err)
		if next.EmployeeID != second.ID {
			t.Errorf("expected new holder %s, got %s", second.ID, next.EmployeeID)
		}
	})
}

func TestAmendReturn(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("rejects_active_assignment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		assignment := testutil.CreateTestAssignment(t, db, asset, employee)

		_, err := svc.AmendReturn(actor, assignment.ID, AmendReturnFields{Notes: strPtr("late")})
		testutil.AssertAppError(t, err, "ASSIGNMENT_ACTIVE")
	})

	t.Run("amends_notes_and_condition", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		assignment := testutil.CreateTestAssignment(t, db, asset, employee)
		_, err := svc.Return(actor, assignment.ID, ReturnInput{ConditionOnReturn: "good"})
		testutil.AssertNoError(t, err)

		amended, err := svc.AmendReturn(actor, assignment.ID, AmendReturnFields{
			Notes:             strPtr("missing charger"),
			ConditionOnReturn: strPtr("fair"),
		})
		testutil.AssertNoError(t, err)

		if amended.Notes != "missing charger" {
			t.Errorf("expected amended notes, got %q", amended.Notes)
		}
		if amended.ConditionOnReturn != "fair" {
			t.Errorf("expected amended condition, got %q", amended.ConditionOnReturn)
		}
		if amended.Status != models.AssignmentStatusReturned {
			t.Errorf("amendment must not change status, got %s", amended.Status)
		}

		var entry models.AuditLog
		if err := db.Where("action = ?", models.AuditActionUpdateReturnDetails).First(&entry).Error; err != nil {
			t.Fatalf("expected UPDATE_RETURN_DETAILS audit entry: %v", err)
		}
	})

	t.Run("toggle_retired_on", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		assignment := testutil.CreateTestAssignment(t, db, asset, employee)
		_, err := svc.Return(actor, assignment.ID, ReturnInput{})
		testutil.AssertNoError(t, err)

		amended, err := svc.AmendReturn(actor, assignment.ID, AmendReturnFields{
			Retired:      boolPtr(true),
			RetireReason: strPtr("battery swollen"),
		})
		testutil.AssertNoError(t, err)

		if amended.Status != models.AssignmentStatusRetired {
			t.Errorf("expected assignment retired, got %s", amended.Status)
		}
		var fresh models.Asset
		if err := db.First(&fresh, "id = ?", asset.ID).Error; err != nil {
			t.Fatalf("failed to reload asset: %v", err)
		}
		if fresh.Status != models.AssetStatusRetired {
			t.Errorf("expected asset retired, got %s", fresh.Status)
		}
		if fresh.RetireReason != "battery swollen" {
			t.Errorf("expected reason on asset, got %q", fresh.RetireReason)
		}
	})

	t.Run("toggle_on_requires_reason", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		assignment := testutil.CreateTestAssignment(t, db, asset, employee)
		_, err := svc.Return(actor, assignment.ID, ReturnInput{})
		testutil.AssertNoError(t, err)

		_, err = svc.AmendReturn(actor, assignment.ID, AmendReturnFields{Retired: boolPtr(true)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("toggle_on_blocked_when_reassigned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		first := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		second := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		assignment := testutil.CreateTestAssignment(t, db, asset, first)
		_, err := svc.Return(actor, assignment.ID, ReturnInput{})
		testutil.AssertNoError(t, err)
		_, err = svc.Assign(actor, AssignInput{AssetID: asset.ID, EmployeeID: second.ID})
		testutil.AssertNoError(t, err)

		_, err = svc.AmendReturn(actor, assignment.ID, AmendReturnFields{
			Retired:      boolPtr(true),
			RetireReason: strPtr("too old"),
		})
		testutil.AssertAppError(t, err, "ASSET_NOT_AVAILABLE")
	})

	t.Run("toggle_retired_off", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		asset := testutil.CreateTestAsset(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		assignment := testutil.CreateTestAssignment(t, db, asset, employee)
		_, err := svc.Return(actor, assignment.ID, ReturnInput{Retired: true, RetireReason: "mistake"})
		testutil.AssertNoError(t, err)

		amended, err := svc.AmendReturn(actor, assignment.ID, AmendReturnFields{Retired: boolPtr(false)})
		testutil.AssertNoError(t, err)

		if amended.Status != models.AssignmentStatusReturned {
			t.Errorf("expected assignment back to returned, got %s", amended.Status)
		}
		if amended.Retired {
			t.Error("expected retired flag cleared")
		}
		var fresh models.Asset
		if err := db.First(&fresh, "id = ?", asset.ID).Error; err != nil {
			t.Fatalf("failed to reload asset: %v", err)
		}
		if fresh.Status != models.AssetStatusActive {
			t.Errorf("expected asset restored to active, got %s", fresh.Status)
		}
	})
}

func TestListAssignments(t *testing.T) {
	t.Run("status_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		a1 := testutil.CreateTestAsset(t, db)
		a2 := testutil.CreateTestAsset(t, db)
		testutil.CreateTestAssignment(t, db, a1, employee)
		returned := testutil.CreateTestAssignment(t, db, a2, employee)
		_, err := svc.Return(actor, returned.ID, ReturnInput{})
		testutil.AssertNoError(t, err)

		page, err := svc.ListAssignments(AssignmentFilter{Status: "active"}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 1 {
			t.Fatalf("expected 1 active assignment, got %d", len(page.Data))
		}

		page, err = svc.ListAssignments(AssignmentFilter{Status: "active,returned"}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 2 {
			t.Fatalf("expected 2 assignments for combined filter, got %d", len(page.Data))
		}
	})

	t.Run("employee_name_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		alice := &models.Employee{EmployeeCode: "E900", Name: "Alice Tan", Email: "alice@test.com", Password: "x", Role: models.RoleEmployee, IsActive: true}
		if err := db.Create(alice).Error; err != nil {
			t.Fatalf("failed to create employee: %v", err)
		}
		bob := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		testutil.CreateTestAssignment(t, db, testutil.CreateTestAsset(t, db), alice)
		testutil.CreateTestAssignment(t, db, testutil.CreateTestAsset(t, db), bob)

		page, err := svc.ListAssignments(AssignmentFilter{EmployeeName: "Alice"}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 1 {
			t.Fatalf("expected 1 assignment for Alice, got %d", len(page.Data))
		}
		if page.Data[0].EmployeeID != alice.ID {
			t.Errorf("expected Alice's assignment, got employee %s", page.Data[0].EmployeeID)
		}
	})

	t.Run("retired_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		actor := manager(t, db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		kept := testutil.CreateTestAssignment(t, db, testutil.CreateTestAsset(t, db), employee)
		scrapped := testutil.CreateTestAssignment(t, db, testutil.CreateTestAsset(t, db), employee)
		_, err := svc.Return(actor, kept.ID, ReturnInput{})
		testutil.AssertNoError(t, err)
		_, err = svc.Return(actor, scrapped.ID, ReturnInput{Retired: true, RetireReason: "obsolete"})
		testutil.AssertNoError(t, err)

		retired := true
		page, err := svc.ListAssignments(AssignmentFilter{Retired: &retired}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 1 {
			t.Fatalf("expected 1 retired assignment, got %d", len(page.Data))
		}
		if page.Data[0].ID != scrapped.ID {
			t.Errorf("expected assignment %s, got %s", scrapped.ID, page.Data[0].ID)
		}
	})

	t.Run("assigned_date_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAssignmentService(db)
		employee := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
		asset := testutil.CreateTestAsset(t, db)
		old := &models.Assignment{
			AssetID: asset.ID, EmployeeID: employee.ID,
			Status:     models.AssignmentStatusReturned,
			AssignedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		}
		if err := db.Create(old).Error; err != nil {
			t.Fatalf("failed to create assignment: %v", err)
		}
		testutil.CreateTestAssignment(t, db, testutil.CreateTestAsset(t, db), employee)

		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		page, err := svc.ListAssignments(AssignmentFilter{AssignedFrom: &from}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 1 {
			t.Fatalf("expected 1 assignment after %v, got %d", from, len(page.Data))
		}
	})
}

func TestMyAssignments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newTestAssignmentService(db)
	mine := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
	other := testutil.CreateTestEmployee(t, db, models.RoleEmployee)
	testutil.CreateTestAssignment(t, db, testutil.CreateTestAsset(t, db), mine)
	testutil.CreateTestAssignment(t, db, testutil.CreateTestAsset(t, db), other)

	page, err := svc.MyAssignments(mine.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if len(page.Data) != 1 {
		t.Fatalf("expected only own assignments, got %d", len(page.Data))
	}
	if page.Data[0].EmployeeID != mine.ID {
		t.Errorf("expected employee %s, got %s", mine.ID, page.Data[0].EmployeeID)
	}
}
