package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "PENDING"
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusCompleted  MaintenanceStatus = "COMPLETED"
)

func ValidMaintenanceStatus(s MaintenanceStatus) bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusInProgress, MaintenanceStatusCompleted:
		return true
	}
	return false
}

type MaintenanceType string

const (
	MaintenanceTypeCorrective MaintenanceType = "CORRECTIVE"
	MaintenanceTypePreventive MaintenanceType = "PREVENTIVE"
)

func ValidMaintenanceType(t MaintenanceType) bool {
	return t == MaintenanceTypeCorrective || t == MaintenanceTypePreventive
}

type MaintenanceRequest struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleID   uuid.UUID         `gorm:"type:uuid;not null" json:"vehicle_id"`
	Type        MaintenanceType   `gorm:"type:maintenance_type;not null" json:"type"`
	Description string            `gorm:"type:text;not null" json:"description"`
	Status      MaintenanceStatus `gorm:"type:maintenance_status;not null;default:'PENDING'" json:"status"`
	RequestedBy uuid.UUID         `gorm:"type:uuid;not null" json:"requested_by"`
	RequestedAt time.Time         `gorm:"not null" json:"requested_at"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"-"`
}

func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

func (m *MaintenanceRequest) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.RequestedAt.IsZero() {
		m.RequestedAt = time.Now().UTC()
	}
	return nil
}
