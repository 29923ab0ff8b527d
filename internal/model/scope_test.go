package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestScopeFor(t *testing.T) {
	adminScope := ScopeFor(Principal{UserID: uuid.New(), Role: UserRoleAdmin})
	if adminScope.Type != ScopeAll {
		t.Fatalf("admin should get ALL scope, got %s", adminScope.Type)
	}

	managerScope := ScopeFor(Principal{UserID: uuid.New(), Role: UserRoleManager})
	if managerScope.Type != ScopeAll {
		t.Fatalf("manager should get ALL scope, got %s", managerScope.Type)
	}

	employeeID := uuid.New()
	driverScope := ScopeFor(Principal{UserID: uuid.New(), Role: UserRoleDriver, EmployeeID: &employeeID})
	if driverScope.Type != ScopeSelf {
		t.Fatalf("driver should get SELF scope, got %s", driverScope.Type)
	}

	if !driverScope.AllowsTrip(employeeID) {
		t.Errorf("driver should see own trips")
	}
	if driverScope.AllowsTrip(uuid.New()) {
		t.Errorf("driver should not see other drivers' trips")
	}

	userID := uuid.New()
	employeeScope := ScopeFor(Principal{UserID: userID, Role: UserRoleEmployee})
	if !employeeScope.AllowsRequest(userID) {
		t.Errorf("employee should see own requests")
	}
	if employeeScope.AllowsRequest(uuid.New()) {
		t.Errorf("employee should not see others' requests")
	}
	if employeeScope.AllowsTrip(uuid.New()) {
		t.Errorf("employee without roster link should see no trips")
	}
}
