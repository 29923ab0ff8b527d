package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

// RosterService covers the administrative CRUD over employees, vehicles,
// and sectors. Employees are never hard-deleted.
type RosterService struct {
	employeeRepo *repository.EmployeeRepository
	vehicleRepo  *repository.VehicleRepository
	sectorRepo   *repository.SectorRepository
}

func NewRosterService(
	employeeRepo *repository.EmployeeRepository,
	vehicleRepo *repository.VehicleRepository,
	sectorRepo *repository.SectorRepository,
) *RosterService {
	return &RosterService{
		employeeRepo: employeeRepo,
		vehicleRepo:  vehicleRepo,
		sectorRepo:   sectorRepo,
	}
}

type CreateEmployeeInput struct {
	FullName        string
	JobTitle        string
	CanDrive        bool
	SectorID        uuid.UUID
	LicenseNumber   *string
	LicenseCategory *string
	LicenseExpiry   *time.Time
}

func (s *RosterService) CreateEmployee(ctx context.Context, principal model.Principal, input CreateEmployeeInput) (*model.Employee, error) {
	if !principal.CanDecide() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.sectorRepo.GetByID(ctx, input.SectorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	employee := &model.Employee{
		FullName:        strings.TrimSpace(input.FullName),
		JobTitle:        strings.TrimSpace(input.JobTitle),
		CanDrive:        input.CanDrive,
		SectorID:        input.SectorID,
		Status:          model.EmployeeStatusAvailable,
		LicenseNumber:   input.LicenseNumber,
		LicenseCategory: input.LicenseCategory,
		LicenseExpiry:   input.LicenseExpiry,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *RosterService) ListEmployees(ctx context.Context, opts repository.EmployeeFilter) ([]model.Employee, error) {
	return s.employeeRepo.List(ctx, opts)
}

func (s *RosterService) GetEmployee(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return employee, nil
}

type UpdateEmployeeInput struct {
	FullName        *string
	JobTitle        *string
	CanDrive        *bool
	SectorID        *uuid.UUID
	LicenseNumber   *string
	LicenseCategory *string
	LicenseExpiry   *time.Time
}

func (s *RosterService) UpdateEmployee(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateEmployeeInput) (*model.Employee, error) {
	if !principal.CanDecide() {
		return nil, ErrPermissionDenied
	}

	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		if strings.TrimSpace(*input.FullName) == "" {
			return nil, ErrInvalidInput
		}
		employee.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.JobTitle != nil {
		employee.JobTitle = strings.TrimSpace(*input.JobTitle)
	}
	if input.CanDrive != nil {
		employee.CanDrive = *input.CanDrive
	}
	if input.SectorID != nil {
		if _, err := s.sectorRepo.GetByID(ctx, *input.SectorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		employee.SectorID = *input.SectorID
	}
	if input.LicenseNumber != nil {
		employee.LicenseNumber = input.LicenseNumber
	}
	if input.LicenseCategory != nil {
		employee.LicenseCategory = input.LicenseCategory
	}
	if input.LicenseExpiry != nil {
		employee.LicenseExpiry = input.LicenseExpiry
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// SetEmployeeStatus covers manual roster moves (ON_DUTY, ON_LEAVE). Trip
// transitions manage ON_TRIP themselves; setting it by hand is rejected.
func (s *RosterService) SetEmployeeStatus(ctx context.Context, principal model.Principal, id uuid.UUID, status model.EmployeeStatus) error {
	if !principal.CanDecide() {
		return ErrPermissionDenied
	}
	if !model.ValidEmployeeStatus(status) || status == model.EmployeeStatusOnTrip {
		return ErrInvalidInput
	}
	if err := s.employeeRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

type CreateVehicleInput struct {
	Model    string
	Plate    string
	SectorID uuid.UUID
	Mileage  int64
}

func (s *RosterService) CreateVehicle(ctx context.Context, principal model.Principal, input CreateVehicleInput) (*model.Vehicle, error) {
	if !principal.CanDecide() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Model) == "" || strings.TrimSpace(input.Plate) == "" {
		return nil, ErrInvalidInput
	}
	if input.Mileage < 0 {
		return nil, ErrInvalidInput
	}
	if _, err := s.sectorRepo.GetByID(ctx, input.SectorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	vehicle := &model.Vehicle{
		Model:    strings.TrimSpace(input.Model),
		Plate:    strings.ToUpper(strings.TrimSpace(input.Plate)),
		SectorID: input.SectorID,
		Mileage:  input.Mileage,
		Status:   model.VehicleStatusAvailable,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *RosterService) ListVehicles(ctx context.Context, opts repository.VehicleFilter) ([]model.Vehicle, error) {
	return s.vehicleRepo.List(ctx, opts)
}

func (s *RosterService) GetVehicle(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

type UpdateVehicleInput struct {
	Model    *string
	SectorID *uuid.UUID
}

func (s *RosterService) UpdateVehicle(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateVehicleInput) (*model.Vehicle, error) {
	if !principal.CanDecide() {
		return nil, ErrPermissionDenied
	}

	vehicle, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Model != nil {
		if strings.TrimSpace(*input.Model) == "" {
			return nil, ErrInvalidInput
		}
		vehicle.Model = strings.TrimSpace(*input.Model)
	}
	if input.SectorID != nil {
		if _, err := s.sectorRepo.GetByID(ctx, *input.SectorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		vehicle.SectorID = *input.SectorID
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// SetVehicleStatus covers manual fleet moves (ON_DUTY, AVAILABLE). Trip
// transitions manage ON_TRIP and maintenance manages MAINTENANCE; setting
// either by hand is rejected.
func (s *RosterService) SetVehicleStatus(ctx context.Context, principal model.Principal, id uuid.UUID, status model.VehicleStatus) error {
	if !principal.CanDecide() {
		return ErrPermissionDenied
	}
	if !model.ValidVehicleStatus(status) || status == model.VehicleStatusOnTrip || status == model.VehicleStatusMaintenance {
		return ErrInvalidInput
	}
	if err := s.vehicleRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

type CreateSectorInput struct {
	Name        string
	Description string
}

func (s *RosterService) CreateSector(ctx context.Context, principal model.Principal, input CreateSectorInput) (*model.Sector, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.sectorRepo.GetByName(ctx, strings.TrimSpace(input.Name)); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sector := &model.Sector{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
	}
	if err := s.sectorRepo.Create(ctx, sector); err != nil {
		return nil, err
	}
	return sector, nil
}

type UpdateSectorInput struct {
	Name        *string
	Description *string
}

func (s *RosterService) UpdateSector(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateSectorInput) (*model.Sector, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	sector, err := s.sectorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		if name != sector.Name {
			if existing, err := s.sectorRepo.GetByName(ctx, name); err == nil && existing.ID != sector.ID {
				return nil, ErrConflict
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			sector.Name = name
		}
	}
	if input.Description != nil {
		sector.Description = *input.Description
	}

	if err := s.sectorRepo.Update(ctx, sector); err != nil {
		return nil, err
	}
	return sector, nil
}

// ListSectors returns each sector with its derived driver and vehicle
// counts.
func (s *RosterService) ListSectors(ctx context.Context) ([]model.SectorSummary, error) {
	sectors, err := s.sectorRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.SectorSummary, 0, len(sectors))
	for _, sector := range sectors {
		drivers, err := s.employeeRepo.CountDriversBySector(ctx, sector.ID)
		if err != nil {
			return nil, err
		}
		vehicles, err := s.vehicleRepo.CountBySector(ctx, sector.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, model.SectorSummary{
			Sector:       sector,
			DriverCount:  drivers,
			VehicleCount: vehicles,
		})
	}
	return summaries, nil
}
