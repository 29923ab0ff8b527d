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

type RequestService struct {
	db           *gorm.DB
	sectorRepo   *repository.SectorRepository
	employeeRepo *repository.EmployeeRepository
	vehicleRepo  *repository.VehicleRepository
	requestRepo  *repository.RequestRepository
	tripRepo     *repository.TripRepository
	policy       AssignmentPolicy
}

func NewRequestService(
	db *gorm.DB,
	sectorRepo *repository.SectorRepository,
	employeeRepo *repository.EmployeeRepository,
	vehicleRepo *repository.VehicleRepository,
	requestRepo *repository.RequestRepository,
	tripRepo *repository.TripRepository,
	policy AssignmentPolicy,
) *RequestService {
	return &RequestService{
		db:           db,
		sectorRepo:   sectorRepo,
		employeeRepo: employeeRepo,
		vehicleRepo:  vehicleRepo,
		requestRepo:  requestRepo,
		tripRepo:     tripRepo,
		policy:       policy,
	}
}

type SubmitRequestInput struct {
	Title       string
	SectorID    uuid.UUID
	Details     string
	Destination *string
	Priority    model.RequestPriority
}

func (s *RequestService) Submit(ctx context.Context, principal model.Principal, input SubmitRequestInput) (*model.VehicleRequest, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidInput
	}

	if input.Priority == "" {
		input.Priority = model.RequestPriorityLow
	}
	if !model.ValidRequestPriority(input.Priority) {
		return nil, ErrInvalidInput
	}

	if _, err := s.sectorRepo.GetByID(ctx, input.SectorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var destination *string
	if input.Destination != nil {
		if trimmed := strings.TrimSpace(*input.Destination); trimmed != "" {
			destination = &trimmed
		}
	}

	request := &model.VehicleRequest{
		Title:       strings.TrimSpace(input.Title),
		SectorID:    input.SectorID,
		Details:     input.Details,
		Destination: destination,
		Priority:    input.Priority,
		Status:      model.RequestStatusPending,
		RequestedBy: principal.UserID,
		RequestedAt: time.Now().UTC(),
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	if err := s.requestRepo.LogStatusChange(ctx, &model.RequestStatusLog{
		RequestID: request.ID,
		NewStatus: model.RequestStatusPending,
		Note:      "submitted",
		ChangedBy: &principal.UserID,
	}); err != nil {
		return nil, err
	}

	return request, nil
}

type ListRequestsOptions struct {
	Statuses   []model.RequestStatus
	Priorities []model.RequestPriority
	SectorID   *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

func (s *RequestService) List(ctx context.Context, principal model.Principal, opts ListRequestsOptions) ([]model.RequestRecord, error) {
	filter := repository.RequestFilter{
		Scope:      model.ScopeFor(principal),
		Statuses:   opts.Statuses,
		Priorities: opts.Priorities,
		SectorID:   opts.SectorID,
		DateFrom:   opts.DateFrom,
		DateTo:     opts.DateTo,
		Limit:      opts.Limit,
		Offset:     opts.Offset,
	}

	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	records := make([]model.RequestRecord, 0, len(requests))
	for _, request := range requests {
		records = append(records, model.BuildRequestRecord(request))
	}
	return records, nil
}

func (s *RequestService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.RequestRecord, error) {
	request, err := s.requestRepo.GetByID(ctx, model.ScopeFor(principal), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	record := model.BuildRequestRecord(*request)

	trips, err := s.tripRepo.CountByRequestID(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	record.HasTrip = trips > 0

	return &record, nil
}

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

type DecisionOutcome string

const (
	OutcomeRejected DecisionOutcome = "REJECTED"
	OutcomeAssigned DecisionOutcome = "ASSIGNED"
	// OutcomeDeferred means the request was approved but no trip exists
	// yet; it is never conflated with a full assignment.
	OutcomeDeferred DecisionOutcome = "DEFERRED"
)

type DecisionResult struct {
	Request        model.VehicleRequest `json:"request"`
	Outcome        DecisionOutcome      `json:"outcome"`
	Trip           *model.Trip          `json:"trip,omitempty"`
	DeferredReason string               `json:"deferred_reason,omitempty"`
}

// Decide resolves a pending request. Approval, assignment, and trip
// creation run in one transaction over row-locked rows so concurrent
// decisions cannot double-allocate a driver or vehicle.
func (s *RequestService) Decide(ctx context.Context, principal model.Principal, requestID uuid.UUID, decision Decision, note string) (*DecisionResult, error) {
	if !principal.CanDecide() {
		return nil, ErrPermissionDenied
	}
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, ErrInvalidInput
	}

	var result DecisionResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requestRepo := s.requestRepo.WithTx(tx)
		tripRepo := s.tripRepo.WithTx(tx)

		request, err := requestRepo.GetByIDLocked(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if request.Status != model.RequestStatusPending {
			return ErrInvalidStatus
		}

		if decision == DecisionReject {
			return s.reject(ctx, requestRepo, request, principal, note, &result)
		}

		return s.approve(ctx, tx, requestRepo, tripRepo, request, principal, note, &result)
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *RequestService) reject(ctx context.Context, requestRepo *repository.RequestRepository, request *model.VehicleRequest, principal model.Principal, note string, result *DecisionResult) error {
	if err := requestRepo.UpdateStatus(ctx, request.ID, model.RequestStatusRejected); err != nil {
		return err
	}

	prev := request.Status
	if err := requestRepo.LogStatusChange(ctx, &model.RequestStatusLog{
		RequestID: request.ID,
		OldStatus: &prev,
		NewStatus: model.RequestStatusRejected,
		Note:      note,
		ChangedBy: &principal.UserID,
	}); err != nil {
		return err
	}

	request.Status = model.RequestStatusRejected
	result.Request = *request
	result.Outcome = OutcomeRejected
	return nil
}

func (s *RequestService) approve(ctx context.Context, tx *gorm.DB, requestRepo *repository.RequestRepository, tripRepo *repository.TripRepository, request *model.VehicleRequest, principal model.Principal, note string, result *DecisionResult) error {
	if err := requestRepo.UpdateStatus(ctx, request.ID, model.RequestStatusApproved); err != nil {
		return err
	}

	prev := request.Status
	if err := requestRepo.LogStatusChange(ctx, &model.RequestStatusLog{
		RequestID: request.ID,
		OldStatus: &prev,
		NewStatus: model.RequestStatusApproved,
		Note:      note,
		ChangedBy: &principal.UserID,
	}); err != nil {
		return err
	}

	request.Status = model.RequestStatusApproved
	result.Request = *request

	drivers, err := s.employeeRepo.WithTx(tx).LockAvailableDrivers(ctx)
	if err != nil {
		return err
	}
	vehicles, err := s.vehicleRepo.WithTx(tx).LockAvailableVehicles(ctx)
	if err != nil {
		return err
	}

	driver, vehicle, ok, reason := s.policy.Pick(*request, drivers, vehicles)
	if !ok {
		result.Outcome = OutcomeDeferred
		result.DeferredReason = reason
		return nil
	}

	destination := model.DefaultDestination
	if request.Destination != nil {
		destination = *request.Destination
	}

	trip := &model.Trip{
		RequestID:   request.ID,
		Title:       request.Title,
		DriverID:    driver.ID,
		VehicleID:   vehicle.ID,
		Origin:      model.DefaultOrigin,
		Destination: destination,
		DepartureAt: time.Now().UTC(),
		Status:      model.TripStatusScheduled,
	}

	if err := tripRepo.Create(ctx, trip); err != nil {
		return err
	}

	if err := tripRepo.LogStatusChange(ctx, &model.TripStatusLog{
		TripID:    trip.ID,
		NewStatus: model.TripStatusScheduled,
		Note:      "created from approved request",
		ChangedBy: &principal.UserID,
	}); err != nil {
		return err
	}

	// Driver and vehicle stay AVAILABLE until the trip actually starts;
	// a scheduled trip does not occupy resources.
	result.Outcome = OutcomeAssigned
	result.Trip = trip
	return nil
}
