package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/lifecycle"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type MaintenanceService struct {
	db              *gorm.DB
	maintenanceRepo *repository.MaintenanceRepository
	vehicleRepo     *repository.VehicleRepository
}

func NewMaintenanceService(
	db *gorm.DB,
	maintenanceRepo *repository.MaintenanceRepository,
	vehicleRepo *repository.VehicleRepository,
) *MaintenanceService {
	return &MaintenanceService{
		db:              db,
		maintenanceRepo: maintenanceRepo,
		vehicleRepo:     vehicleRepo,
	}
}

type CreateMaintenanceInput struct {
	VehicleID   uuid.UUID
	Type        model.MaintenanceType
	Description string
}

func (s *MaintenanceService) Create(ctx context.Context, principal model.Principal, input CreateMaintenanceInput) (*model.MaintenanceRequest, error) {
	if !model.ValidMaintenanceType(input.Type) {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.vehicleRepo.GetByID(ctx, input.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// One open corrective request per vehicle. A second report of the same
	// breakage belongs on the existing request.
	if input.Type == model.MaintenanceTypeCorrective {
		open, err := s.maintenanceRepo.HasOpenCorrective(ctx, input.VehicleID)
		if err != nil {
			return nil, err
		}
		if open {
			return nil, ErrConflict
		}
	}

	request := &model.MaintenanceRequest{
		VehicleID:   input.VehicleID,
		Type:        input.Type,
		Description: strings.TrimSpace(input.Description),
		Status:      model.MaintenanceStatusPending,
		RequestedBy: principal.UserID,
		RequestedAt: time.Now().UTC(),
	}

	if err := s.maintenanceRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	if err := s.maintenanceRepo.LogStatusChange(ctx, &model.MaintenanceStatusLog{
		MaintenanceID: request.ID,
		NewStatus:     model.MaintenanceStatusPending,
		Note:          "submitted",
		ChangedBy:     &principal.UserID,
	}); err != nil {
		return nil, err
	}

	return request, nil
}

type ListMaintenanceOptions struct {
	Statuses  []model.MaintenanceStatus
	Types     []model.MaintenanceType
	VehicleID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    int
}

func (s *MaintenanceService) List(ctx context.Context, principal model.Principal, opts ListMaintenanceOptions) ([]model.MaintenanceRequest, error) {
	filter := repository.MaintenanceFilter{
		Statuses:  opts.Statuses,
		Types:     opts.Types,
		VehicleID: opts.VehicleID,
		DateFrom:  opts.DateFrom,
		DateTo:    opts.DateTo,
		Limit:     opts.Limit,
		Offset:    opts.Offset,
	}
	return s.maintenanceRepo.List(ctx, filter)
}

func (s *MaintenanceService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.MaintenanceRequest, error) {
	request, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return request, nil
}

// UpdateStatus moves a maintenance request along its machine. A corrective
// request entering IN_PROGRESS parks the vehicle (status MAINTENANCE);
// leaving IN_PROGRESS releases it. A vehicle currently on a trip cannot be
// parked.
func (s *MaintenanceService) UpdateStatus(ctx context.Context, principal model.Principal, id uuid.UUID, target model.MaintenanceStatus, note string) (*model.MaintenanceRequest, error) {
	if !principal.CanDecide() {
		return nil, ErrPermissionDenied
	}
	if !model.ValidMaintenanceStatus(target) {
		return nil, ErrInvalidInput
	}

	event, ok := lifecycle.MaintenanceEventFor(target)
	if !ok {
		return nil, ErrInvalidInput
	}

	var updated *model.MaintenanceRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		maintenanceRepo := s.maintenanceRepo.WithTx(tx)
		vehicleRepo := s.vehicleRepo.WithTx(tx)

		request, err := maintenanceRepo.GetByIDLocked(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !lifecycle.CanMaintenance(request.Status, event) {
			return ErrInvalidStatus
		}

		if request.Type == model.MaintenanceTypeCorrective {
			if err := s.syncVehicle(ctx, vehicleRepo, request, target); err != nil {
				return err
			}
		}

		prev := request.Status
		if err := maintenanceRepo.UpdateStatus(ctx, request.ID, target); err != nil {
			return err
		}
		if err := maintenanceRepo.LogStatusChange(ctx, &model.MaintenanceStatusLog{
			MaintenanceID: request.ID,
			OldStatus:     &prev,
			NewStatus:     target,
			Note:          note,
			ChangedBy:     &principal.UserID,
		}); err != nil {
			return err
		}

		request.Status = target
		updated = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *MaintenanceService) syncVehicle(ctx context.Context, vehicleRepo *repository.VehicleRepository, request *model.MaintenanceRequest, target model.MaintenanceStatus) error {
	vehicle, err := vehicleRepo.GetByIDLocked(ctx, request.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	entering := request.Status != model.MaintenanceStatusInProgress && target == model.MaintenanceStatusInProgress
	leaving := request.Status == model.MaintenanceStatusInProgress && target != model.MaintenanceStatusInProgress

	if entering {
		if vehicle.Status == model.VehicleStatusOnTrip {
			return ErrConflict
		}
		return vehicleRepo.UpdateStatus(ctx, vehicle.ID, model.VehicleStatusMaintenance)
	}
	if leaving && vehicle.Status == model.VehicleStatusMaintenance {
		return vehicleRepo.UpdateStatus(ctx, vehicle.ID, model.VehicleStatusAvailable)
	}
	return nil
}
