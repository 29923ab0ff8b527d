package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-service/internal/model"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) WithTx(tx *gorm.DB) *RequestRepository {
	return &RequestRepository{db: tx}
}

type RequestFilter struct {
	Scope      model.Scope
	Statuses   []model.RequestStatus
	Priorities []model.RequestPriority
	SectorID   *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

func (r *RequestRepository) List(ctx context.Context, filter RequestFilter) ([]model.VehicleRequest, error) {
	query := r.db.WithContext(ctx).Model(&model.VehicleRequest{})

	query = applyRequestScope(query, filter.Scope)

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if len(filter.Priorities) > 0 {
		query = query.Where("priority IN ?", filter.Priorities)
	}
	if filter.SectorID != nil {
		query = query.Where("sector_id = ?", *filter.SectorID)
	}
	if filter.DateFrom != nil {
		query = query.Where("requested_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("requested_at <= ?", *filter.DateTo)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(200)
	}

	// Most-recent-first is an explicit contract of the pending queue.
	var requests []model.VehicleRequest
	if err := query.
		Order("requested_at DESC").
		Preload("Sector").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestRepository) GetByID(ctx context.Context, scope model.Scope, id uuid.UUID) (*model.VehicleRequest, error) {
	query := r.db.WithContext(ctx).Model(&model.VehicleRequest{}).Where("id = ?", id)
	query = applyRequestScope(query, scope)

	var request model.VehicleRequest
	if err := query.Preload("Sector").First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// GetByIDLocked loads a request under a row lock; the decision flow uses it
// so a request cannot be decided twice concurrently.
func (r *RequestRepository) GetByIDLocked(ctx context.Context, id uuid.UUID) (*model.VehicleRequest, error) {
	var request model.VehicleRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *RequestRepository) Create(ctx context.Context, request *model.VehicleRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.RequestStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.VehicleRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RequestRepository) LogStatusChange(ctx context.Context, logEntry *model.RequestStatusLog) error {
	return r.db.WithContext(ctx).Create(logEntry).Error
}

func applyRequestScope(query *gorm.DB, scope model.Scope) *gorm.DB {
	if scope.Type == model.ScopeAll {
		return query
	}
	return query.Where("requested_by = ?", scope.UserID)
}
