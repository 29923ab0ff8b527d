package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TripStatus string

const (
	TripStatusScheduled  TripStatus = "SCHEDULED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCanceled   TripStatus = "CANCELED"
)

func ValidTripStatus(s TripStatus) bool {
	switch s {
	case TripStatusScheduled, TripStatusInProgress, TripStatusCompleted, TripStatusCanceled:
		return true
	}
	return false
}

// DefaultOrigin is the municipal depot every assigned trip departs from
// unless the request says otherwise.
const DefaultOrigin = "Municipal Depot"

// DefaultDestination is used when a request carries no destination.
const DefaultDestination = "Not specified"

type Trip struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	RequestID   uuid.UUID  `gorm:"type:uuid;not null" json:"request_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	DriverID    uuid.UUID  `gorm:"type:uuid;not null" json:"driver_id"`
	VehicleID   uuid.UUID  `gorm:"type:uuid;not null" json:"vehicle_id"`
	Origin      string     `gorm:"type:varchar(255);not null" json:"origin"`
	Destination string     `gorm:"type:varchar(255);not null" json:"destination"`
	DepartureAt time.Time  `gorm:"not null" json:"departure_at"`
	ArrivalAt   *time.Time `json:"arrival_at,omitempty"`
	Status      TripStatus `gorm:"type:trip_status;not null;default:'SCHEDULED'" json:"status"`

	StartMileage   *int64          `json:"start_mileage,omitempty"`
	EndMileage     *int64          `json:"end_mileage,omitempty"`
	StartNotes     string          `gorm:"type:text" json:"start_notes"`
	EndNotes       string          `gorm:"type:text" json:"end_notes"`
	StartChecklist []ChecklistItem `gorm:"serializer:json;type:jsonb" json:"start_checklist"`
	EndChecklist   []ChecklistItem `gorm:"serializer:json;type:jsonb" json:"end_checklist"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Request *VehicleRequest `gorm:"foreignKey:RequestID" json:"-"`
	Driver  *Employee       `gorm:"foreignKey:DriverID" json:"-"`
	Vehicle *Vehicle        `gorm:"foreignKey:VehicleID" json:"-"`
}

func (Trip) TableName() string {
	return "trips"
}

func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Refueling is an informational record attached to a trip in progress. It
// never changes trip state.
type Refueling struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TripID    uuid.UUID `gorm:"type:uuid;not null;index" json:"trip_id"`
	Liters    float64   `gorm:"not null" json:"liters"`
	Odometer  *int64    `json:"odometer,omitempty"`
	Cost      *float64  `json:"cost,omitempty"`
	Station   string    `gorm:"type:varchar(255)" json:"station"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Refueling) TableName() string {
	return "trip_refuelings"
}

func (r *Refueling) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
