package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusOnDuty      VehicleStatus = "ON_DUTY"
	VehicleStatusOnTrip      VehicleStatus = "ON_TRIP"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

func ValidVehicleStatus(s VehicleStatus) bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusOnDuty, VehicleStatusOnTrip, VehicleStatusMaintenance:
		return true
	}
	return false
}

// Mileage is written only at trip completion and never decreases.
type Vehicle struct {
	ID       uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Model    string        `gorm:"type:varchar(128);not null" json:"model"`
	Plate    string        `gorm:"type:varchar(16);not null;uniqueIndex" json:"plate"`
	SectorID uuid.UUID     `gorm:"type:uuid;not null" json:"sector_id"`
	Mileage  int64         `gorm:"not null;default:0" json:"mileage"`
	Status   VehicleStatus `gorm:"type:vehicle_status;not null;default:'AVAILABLE'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Sector *Sector `gorm:"foreignKey:SectorID" json:"-"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
