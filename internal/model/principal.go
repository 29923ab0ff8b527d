package model

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleManager  UserRole = "MANAGER"
	UserRoleDriver   UserRole = "DRIVER"
	UserRoleEmployee UserRole = "EMPLOYEE"
)

type Principal struct {
	UserID uuid.UUID
	Role   UserRole
	// EmployeeID links the account to its roster record, set for drivers.
	EmployeeID *uuid.UUID
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

func (p Principal) IsManager() bool {
	return p.Role == UserRoleManager
}

func (p Principal) IsDriver() bool {
	return p.Role == UserRoleDriver
}

func (p Principal) IsEmployee() bool {
	return p.Role == UserRoleEmployee
}

// CanDecide reports whether the principal may approve or reject vehicle
// requests and manage rosters.
func (p Principal) CanDecide() bool {
	return p.IsAdmin() || p.IsManager()
}
