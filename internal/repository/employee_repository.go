package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-service/internal/model"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *EmployeeRepository) WithTx(tx *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: tx}
}

type EmployeeFilter struct {
	Statuses []model.EmployeeStatus
	SectorID *uuid.UUID
	CanDrive *bool
	Search   string
	Limit    int
	Offset   int
}

func (r *EmployeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error) {
	query := r.db.WithContext(ctx).Model(&model.Employee{})

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.SectorID != nil {
		query = query.Where("sector_id = ?", *filter.SectorID)
	}
	if filter.CanDrive != nil {
		query = query.Where("can_drive = ?", *filter.CanDrive)
	}
	if filter.Search != "" {
		query = query.Where("full_name ILIKE ?", "%"+filter.Search+"%")
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(200)
	}

	var employees []model.Employee
	if err := query.Order("created_at DESC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetByIDLocked loads an employee under a row lock for compound updates.
func (r *EmployeeRepository) GetByIDLocked(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *EmployeeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.EmployeeStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Employee{}).
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

// LockAvailableDrivers row-locks the driver candidate set so two
// concurrent approvals cannot allocate the same employee. Candidates are
// returned in creation order; the assignment policy decides among them.
func (r *EmployeeRepository) LockAvailableDrivers(ctx context.Context) ([]model.Employee, error) {
	var drivers []model.Employee
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("can_drive = ? AND status = ?", true, model.EmployeeStatusAvailable).
		Order("created_at ASC").
		Find(&drivers).Error
	if err != nil {
		return nil, err
	}
	return drivers, nil
}

// CountDriversBySector counts driver-capable employees per sector.
func (r *EmployeeRepository) CountDriversBySector(ctx context.Context, sectorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("sector_id = ? AND can_drive = ?", sectorID, true).
		Count(&count).Error
	return count, err
}
