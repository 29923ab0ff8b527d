package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type SectorRepository struct {
	db *gorm.DB
}

func NewSectorRepository(db *gorm.DB) *SectorRepository {
	return &SectorRepository{db: db}
}

func (r *SectorRepository) List(ctx context.Context) ([]model.Sector, error) {
	var sectors []model.Sector
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&sectors).Error; err != nil {
		return nil, err
	}
	return sectors, nil
}

func (r *SectorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Sector, error) {
	var sector model.Sector
	if err := r.db.WithContext(ctx).First(&sector, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sector, nil
}

func (r *SectorRepository) GetByName(ctx context.Context, name string) (*model.Sector, error) {
	var sector model.Sector
	if err := r.db.WithContext(ctx).First(&sector, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &sector, nil
}

func (r *SectorRepository) Create(ctx context.Context, sector *model.Sector) error {
	return r.db.WithContext(ctx).Create(sector).Error
}

func (r *SectorRepository) Update(ctx context.Context, sector *model.Sector) error {
	return r.db.WithContext(ctx).Save(sector).Error
}
