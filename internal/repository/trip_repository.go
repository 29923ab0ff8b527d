package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-service/internal/model"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) WithTx(tx *gorm.DB) *TripRepository {
	return &TripRepository{db: tx}
}

type TripFilter struct {
	Scope     model.Scope
	Statuses  []model.TripStatus
	DriverID  *uuid.UUID
	VehicleID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string
	Limit     int
	Offset    int
}

func (r *TripRepository) List(ctx context.Context, filter TripFilter) ([]model.Trip, error) {
	query := r.db.WithContext(ctx).Model(&model.Trip{})

	query = applyTripScope(query, filter.Scope)

	if len(filter.Statuses) > 0 {
		query = query.Where("trips.status IN ?", filter.Statuses)
	}
	if filter.DriverID != nil {
		query = query.Where("trips.driver_id = ?", *filter.DriverID)
	}
	if filter.VehicleID != nil {
		query = query.Where("trips.vehicle_id = ?", *filter.VehicleID)
	}
	if filter.DateFrom != nil {
		query = query.Where("trips.departure_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("trips.departure_at <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Joins("LEFT JOIN employees e ON e.id = trips.driver_id").
			Joins("LEFT JOIN vehicles v ON v.id = trips.vehicle_id").
			Where("(trips.title ILIKE ? OR e.full_name ILIKE ? OR v.plate ILIKE ?)", search, search, search)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(200)
	}

	var trips []model.Trip
	if err := query.
		Order("trips.departure_at DESC").
		Preload("Driver").
		Preload("Vehicle").
		Preload("Request").
		Preload("Request.Sector").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *TripRepository) GetByID(ctx context.Context, scope model.Scope, id uuid.UUID) (*model.Trip, error) {
	query := r.db.WithContext(ctx).Model(&model.Trip{}).Where("trips.id = ?", id)
	query = applyTripScope(query, scope)

	var trip model.Trip
	err := query.
		Preload("Driver").
		Preload("Vehicle").
		Preload("Request").
		Preload("Request.Sector").
		First(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// GetByIDLocked loads a trip under a row lock so start/finish/cancel
// serialize against each other for the same trip.
func (r *TripRepository) GetByIDLocked(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&trip, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) Create(ctx context.Context, trip *model.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *TripRepository) Update(ctx context.Context, trip *model.Trip) error {
	return r.db.WithContext(ctx).Save(trip).Error
}

func (r *TripRepository) CountByRequestID(ctx context.Context, requestID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Trip{}).
		Where("request_id = ?", requestID).
		Count(&count).Error
	return count, err
}

func (r *TripRepository) LogStatusChange(ctx context.Context, logEntry *model.TripStatusLog) error {
	return r.db.WithContext(ctx).Create(logEntry).Error
}

func (r *TripRepository) CreateRefueling(ctx context.Context, refueling *model.Refueling) error {
	return r.db.WithContext(ctx).Create(refueling).Error
}

func (r *TripRepository) ListRefuelings(ctx context.Context, tripID uuid.UUID) ([]model.Refueling, error) {
	var refuelings []model.Refueling
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at ASC").
		Find(&refuelings).Error
	if err != nil {
		return nil, err
	}
	return refuelings, nil
}

func applyTripScope(query *gorm.DB, scope model.Scope) *gorm.DB {
	if scope.Type == model.ScopeAll {
		return query
	}
	if scope.EmployeeID == nil {
		return query.Where("1=0")
	}
	return query.Where("trips.driver_id = ?", *scope.EmployeeID)
}
