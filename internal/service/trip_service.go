package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/lifecycle"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type TripService struct {
	db           *gorm.DB
	tripRepo     *repository.TripRepository
	employeeRepo *repository.EmployeeRepository
	vehicleRepo  *repository.VehicleRepository
}

func NewTripService(
	db *gorm.DB,
	tripRepo *repository.TripRepository,
	employeeRepo *repository.EmployeeRepository,
	vehicleRepo *repository.VehicleRepository,
) *TripService {
	return &TripService{
		db:           db,
		tripRepo:     tripRepo,
		employeeRepo: employeeRepo,
		vehicleRepo:  vehicleRepo,
	}
}

type ListTripsOptions struct {
	Statuses  []model.TripStatus
	DriverID  *uuid.UUID
	VehicleID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string
	Limit     int
	Offset    int
}

func (s *TripService) List(ctx context.Context, principal model.Principal, opts ListTripsOptions) ([]model.TripRecord, error) {
	filter := repository.TripFilter{
		Scope:     model.ScopeFor(principal),
		Statuses:  opts.Statuses,
		DriverID:  opts.DriverID,
		VehicleID: opts.VehicleID,
		DateFrom:  opts.DateFrom,
		DateTo:    opts.DateTo,
		Search:    opts.Search,
		Limit:     opts.Limit,
		Offset:    opts.Offset,
	}

	trips, err := s.tripRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	records := make([]model.TripRecord, 0, len(trips))
	for _, trip := range trips {
		records = append(records, model.BuildTripRecord(trip))
	}
	return records, nil
}

type TripDetails struct {
	Record     model.TripRecord  `json:"record"`
	Refuelings []model.Refueling `json:"refuelings"`
}

func (s *TripService) Get(ctx context.Context, principal model.Principal, tripID uuid.UUID) (*TripDetails, error) {
	trip, err := s.tripRepo.GetByID(ctx, model.ScopeFor(principal), tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	refuelings, err := s.tripRepo.ListRefuelings(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	return &TripDetails{
		Record:     model.BuildTripRecord(*trip),
		Refuelings: refuelings,
	}, nil
}

type StartTripInput struct {
	Mileage   *int64
	Notes     string
	Checklist []model.ChecklistItem
}

// validateStart holds every precondition of the start transition. Driver
// and vehicle must both be AVAILABLE: a vehicle parked for maintenance or
// a pair already out on another trip cannot depart again.
func validateStart(trip *model.Trip, driver *model.Employee, vehicle *model.Vehicle, input StartTripInput) error {
	if !lifecycle.CanTrip(trip.Status, lifecycle.EventStart) {
		return ErrInvalidStatus
	}
	if !model.ChecklistComplete(model.PreTripChecklist, input.Checklist) {
		return ErrChecklistIncomplete
	}
	if input.Mileage == nil {
		return ErrMissingMileage
	}
	if *input.Mileage < 0 {
		return ErrInvalidInput
	}
	if driver.Status != model.EmployeeStatusAvailable {
		return ErrConflict
	}
	if vehicle.Status != model.VehicleStatusAvailable {
		return ErrConflict
	}
	if *input.Mileage < vehicle.Mileage {
		return ErrMileageDecreased
	}
	return nil
}

// validateFinish holds every precondition of the finish transition.
func validateFinish(trip *model.Trip, input FinishTripInput) error {
	if !lifecycle.CanTrip(trip.Status, lifecycle.EventFinish) {
		return ErrInvalidStatus
	}
	if !model.ChecklistComplete(model.PostTripChecklist, input.Checklist) {
		return ErrChecklistIncomplete
	}
	if input.Mileage == nil {
		return ErrMissingMileage
	}
	if trip.StartMileage != nil && *input.Mileage < *trip.StartMileage {
		return ErrMileageDecreased
	}
	return nil
}

// validateRefueling allows fuel stops only while the trip is on the road.
func validateRefueling(trip *model.Trip) error {
	if trip.Status != model.TripStatusInProgress {
		return ErrInvalidStatus
	}
	return nil
}

// Start moves a scheduled trip into progress. The pre-trip checklist must
// be complete and the start mileage must not fall below the vehicle's last
// recorded value. Trip, driver, and vehicle flip together in one
// transaction.
func (s *TripService) Start(ctx context.Context, principal model.Principal, tripID uuid.UUID, input StartTripInput) (*model.Trip, error) {
	var updated *model.Trip

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tripRepo := s.tripRepo.WithTx(tx)

		trip, err := tripRepo.GetByIDLocked(ctx, tripID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := s.authorizeTripActor(principal, trip); err != nil {
			return err
		}

		driver, err := s.employeeRepo.WithTx(tx).GetByIDLocked(ctx, trip.DriverID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		vehicle, err := s.vehicleRepo.WithTx(tx).GetByIDLocked(ctx, trip.VehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := validateStart(trip, driver, vehicle, input); err != nil {
			return err
		}

		prev := trip.Status
		trip.Status = model.TripStatusInProgress
		trip.StartMileage = input.Mileage
		trip.StartNotes = input.Notes
		trip.StartChecklist = model.NormalizeChecklist(input.Checklist)

		if err := tripRepo.Update(ctx, trip); err != nil {
			return err
		}
		if err := s.employeeRepo.WithTx(tx).UpdateStatus(ctx, trip.DriverID, model.EmployeeStatusOnTrip); err != nil {
			return err
		}
		if err := s.vehicleRepo.WithTx(tx).UpdateStatus(ctx, trip.VehicleID, model.VehicleStatusOnTrip); err != nil {
			return err
		}
		if err := tripRepo.LogStatusChange(ctx, &model.TripStatusLog{
			TripID:    trip.ID,
			OldStatus: &prev,
			NewStatus: model.TripStatusInProgress,
			Note:      input.Notes,
			ChangedBy: &principal.UserID,
		}); err != nil {
			return err
		}

		updated = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

type FinishTripInput struct {
	Mileage   *int64
	Notes     string
	Checklist []model.ChecklistItem
}

// Finish completes a trip in progress. End mileage must be at least the
// start mileage; the vehicle's odometer is set to it, keeping mileage
// monotonic, and driver and vehicle return to the available pool.
func (s *TripService) Finish(ctx context.Context, principal model.Principal, tripID uuid.UUID, input FinishTripInput) (*model.Trip, error) {
	var updated *model.Trip

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tripRepo := s.tripRepo.WithTx(tx)

		trip, err := tripRepo.GetByIDLocked(ctx, tripID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := s.authorizeTripActor(principal, trip); err != nil {
			return err
		}

		if err := validateFinish(trip, input); err != nil {
			return err
		}

		now := time.Now().UTC()
		prev := trip.Status
		trip.Status = model.TripStatusCompleted
		trip.EndMileage = input.Mileage
		trip.EndNotes = input.Notes
		trip.EndChecklist = model.NormalizeChecklist(input.Checklist)
		trip.ArrivalAt = &now

		if err := tripRepo.Update(ctx, trip); err != nil {
			return err
		}
		if err := s.employeeRepo.WithTx(tx).UpdateStatus(ctx, trip.DriverID, model.EmployeeStatusAvailable); err != nil {
			return err
		}
		if err := s.vehicleRepo.WithTx(tx).CompleteTripUpdate(ctx, trip.VehicleID, *input.Mileage, model.VehicleStatusAvailable); err != nil {
			return err
		}
		if err := tripRepo.LogStatusChange(ctx, &model.TripStatusLog{
			TripID:    trip.ID,
			OldStatus: &prev,
			NewStatus: model.TripStatusCompleted,
			Note:      input.Notes,
			ChangedBy: &principal.UserID,
		}); err != nil {
			return err
		}

		updated = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Cancel is only reachable from SCHEDULED. A merely scheduled trip never
// occupied its driver or vehicle, so there is nothing to release.
func (s *TripService) Cancel(ctx context.Context, principal model.Principal, tripID uuid.UUID, note string) (*model.Trip, error) {
	if !principal.CanDecide() {
		return nil, ErrPermissionDenied
	}

	var updated *model.Trip

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tripRepo := s.tripRepo.WithTx(tx)

		trip, err := tripRepo.GetByIDLocked(ctx, tripID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !lifecycle.CanTrip(trip.Status, lifecycle.EventCancel) {
			return ErrInvalidStatus
		}

		prev := trip.Status
		trip.Status = model.TripStatusCanceled

		if err := tripRepo.Update(ctx, trip); err != nil {
			return err
		}
		if err := tripRepo.LogStatusChange(ctx, &model.TripStatusLog{
			TripID:    trip.ID,
			OldStatus: &prev,
			NewStatus: model.TripStatusCanceled,
			Note:      note,
			ChangedBy: &principal.UserID,
		}); err != nil {
			return err
		}

		updated = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

type RefuelingInput struct {
	Liters   float64
	Odometer *int64
	Cost     *float64
	Station  string
}

// AddRefueling records a fuel stop for a trip in progress. It never
// changes trip state. The trip row is locked so the stop cannot land on a
// trip that finishes concurrently.
func (s *TripService) AddRefueling(ctx context.Context, principal model.Principal, tripID uuid.UUID, input RefuelingInput) (*model.Refueling, error) {
	if input.Liters <= 0 {
		return nil, ErrInvalidInput
	}

	var refueling *model.Refueling

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tripRepo := s.tripRepo.WithTx(tx)

		trip, err := tripRepo.GetByIDLocked(ctx, tripID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := s.authorizeTripActor(principal, trip); err != nil {
			return err
		}
		if err := validateRefueling(trip); err != nil {
			return err
		}

		refueling = &model.Refueling{
			TripID:   trip.ID,
			Liters:   input.Liters,
			Odometer: input.Odometer,
			Cost:     input.Cost,
			Station:  input.Station,
		}
		return tripRepo.CreateRefueling(ctx, refueling)
	})
	if err != nil {
		return nil, err
	}

	return refueling, nil
}

// authorizeTripActor lets the assigned driver or a decider run trip
// transitions.
func (s *TripService) authorizeTripActor(principal model.Principal, trip *model.Trip) error {
	if !model.ScopeFor(principal).AllowsTrip(trip.DriverID) {
		return ErrPermissionDenied
	}
	return nil
}
