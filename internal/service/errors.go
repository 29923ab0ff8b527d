package service

import "errors"

var (
	ErrPermissionDenied    = errors.New("permission denied")
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrConflict            = errors.New("conflict")
	ErrInvalidStatus       = errors.New("invalid status transition")
	ErrChecklistIncomplete = errors.New("checklist incomplete")
	ErrMissingMileage      = errors.New("mileage reading required")
	ErrMileageDecreased    = errors.New("mileage below last recorded value")
)
