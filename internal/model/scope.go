package model

import "github.com/google/uuid"

type ScopeType string

const (
	// ScopeAll sees every record: administrators and managers.
	ScopeAll ScopeType = "ALL"
	// ScopeSelf is limited to the principal's own requests and trips.
	ScopeSelf ScopeType = "SELF"
)

type Scope struct {
	Type       ScopeType
	UserID     uuid.UUID
	EmployeeID *uuid.UUID
}

// ScopeFor derives the visibility scope from the principal alone; there is
// no organization hierarchy to expand.
func ScopeFor(p Principal) Scope {
	if p.CanDecide() {
		return Scope{Type: ScopeAll, UserID: p.UserID, EmployeeID: p.EmployeeID}
	}
	return Scope{Type: ScopeSelf, UserID: p.UserID, EmployeeID: p.EmployeeID}
}

// AllowsRequest reports whether a vehicle request submitted by requestedBy
// is visible under this scope.
func (s Scope) AllowsRequest(requestedBy uuid.UUID) bool {
	if s.Type == ScopeAll {
		return true
	}
	return s.UserID == requestedBy
}

// AllowsTrip reports whether a trip assigned to driverID is visible under
// this scope.
func (s Scope) AllowsTrip(driverID uuid.UUID) bool {
	if s.Type == ScopeAll {
		return true
	}
	return s.EmployeeID != nil && *s.EmployeeID == driverID
}
