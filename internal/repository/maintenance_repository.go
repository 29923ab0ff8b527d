package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-service/internal/model"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) WithTx(tx *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: tx}
}

type MaintenanceFilter struct {
	Statuses  []model.MaintenanceStatus
	Types     []model.MaintenanceType
	VehicleID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    int
}

func (r *MaintenanceRepository) List(ctx context.Context, filter MaintenanceFilter) ([]model.MaintenanceRequest, error) {
	query := r.db.WithContext(ctx).Model(&model.MaintenanceRequest{})

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if len(filter.Types) > 0 {
		query = query.Where("type IN ?", filter.Types)
	}
	if filter.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filter.VehicleID)
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

	var requests []model.MaintenanceRequest
	if err := query.
		Order("requested_at DESC").
		Preload("Vehicle").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *MaintenanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceRequest, error) {
	var request model.MaintenanceRequest
	if err := r.db.WithContext(ctx).Preload("Vehicle").First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *MaintenanceRepository) GetByIDLocked(ctx context.Context, id uuid.UUID) (*model.MaintenanceRequest, error) {
	var request model.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *MaintenanceRepository) Create(ctx context.Context, request *model.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.MaintenanceStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.MaintenanceRequest{}).
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

// HasOpenCorrective reports whether the vehicle has a corrective request
// that is not completed.
func (r *MaintenanceRepository) HasOpenCorrective(ctx context.Context, vehicleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.MaintenanceRequest{}).
		Where("vehicle_id = ? AND type = ? AND status <> ?",
			vehicleID, model.MaintenanceTypeCorrective, model.MaintenanceStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MaintenanceRepository) LogStatusChange(ctx context.Context, logEntry *model.MaintenanceStatusLog) error {
	return r.db.WithContext(ctx).Create(logEntry).Error
}
