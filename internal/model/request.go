package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

type RequestPriority string

const (
	RequestPriorityLow    RequestPriority = "LOW"
	RequestPriorityMedium RequestPriority = "MEDIUM"
	RequestPriorityHigh   RequestPriority = "HIGH"
)

func ValidRequestPriority(p RequestPriority) bool {
	switch p {
	case RequestPriorityLow, RequestPriorityMedium, RequestPriorityHigh:
		return true
	}
	return false
}

// VehicleRequest is terminal once decided: PENDING moves to APPROVED or
// REJECTED exactly once and never back. Destination is a structured field
// captured at intake.
type VehicleRequest struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	SectorID    uuid.UUID       `gorm:"type:uuid;not null" json:"sector_id"`
	Details     string          `gorm:"type:text" json:"details"`
	Destination *string         `gorm:"type:varchar(255)" json:"destination,omitempty"`
	Priority    RequestPriority `gorm:"type:request_priority;not null;default:'LOW'" json:"priority"`
	Status      RequestStatus   `gorm:"type:request_status;not null;default:'PENDING'" json:"status"`
	RequestedBy uuid.UUID       `gorm:"type:uuid;not null" json:"requested_by"`
	RequestedAt time.Time       `gorm:"not null" json:"requested_at"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Sector *Sector `gorm:"foreignKey:SectorID" json:"-"`
}

func (VehicleRequest) TableName() string {
	return "vehicle_requests"
}

func (r *VehicleRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RequestedAt.IsZero() {
		r.RequestedAt = time.Now().UTC()
	}
	return nil
}
