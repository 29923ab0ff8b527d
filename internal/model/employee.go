package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeStatus string

const (
	EmployeeStatusAvailable EmployeeStatus = "AVAILABLE"
	EmployeeStatusOnDuty    EmployeeStatus = "ON_DUTY"
	EmployeeStatusOnTrip    EmployeeStatus = "ON_TRIP"
	EmployeeStatusOnLeave   EmployeeStatus = "ON_LEAVE"
)

func ValidEmployeeStatus(s EmployeeStatus) bool {
	switch s {
	case EmployeeStatusAvailable, EmployeeStatusOnDuty, EmployeeStatusOnTrip, EmployeeStatusOnLeave:
		return true
	}
	return false
}

type Employee struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	FullName string         `gorm:"type:varchar(255);not null" json:"full_name"`
	JobTitle string         `gorm:"type:varchar(128)" json:"job_title"`
	CanDrive bool           `gorm:"not null;default:false" json:"can_drive"`
	SectorID uuid.UUID      `gorm:"type:uuid;not null" json:"sector_id"`
	Status   EmployeeStatus `gorm:"type:employee_status;not null;default:'AVAILABLE'" json:"status"`

	LicenseNumber   *string    `gorm:"type:varchar(32)" json:"license_number,omitempty"`
	LicenseCategory *string    `gorm:"type:varchar(8)" json:"license_category,omitempty"`
	LicenseExpiry   *time.Time `json:"license_expiry,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Sector *Sector `gorm:"foreignKey:SectorID" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
