package model

import (
	"time"

	"github.com/google/uuid"
)

type SectorBrief struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type DriverBrief struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
}

type VehicleBrief struct {
	ID      uuid.UUID `json:"id"`
	Model   string    `json:"model"`
	Plate   string    `json:"plate"`
	Mileage int64     `json:"mileage"`
}

// SectorSummary carries the derived driver/vehicle counts; they are computed
// per read, never stored.
type SectorSummary struct {
	Sector
	DriverCount  int64 `json:"driver_count"`
	VehicleCount int64 `json:"vehicle_count"`
}

type TripRecord struct {
	Trip        Trip          `json:"trip"`
	Driver      *DriverBrief  `json:"driver"`
	Vehicle     *VehicleBrief `json:"vehicle"`
	Sector      *SectorBrief  `json:"sector"`
	DepartureAt string        `json:"departure_display"`
}

type RequestRecord struct {
	Request VehicleRequest `json:"request"`
	Sector  *SectorBrief   `json:"sector"`
	// HasTrip distinguishes a deferred approval (approved, no trip yet)
	// from an assigned one.
	HasTrip bool `json:"has_trip"`
}

// displayTimeLayout mirrors the dd/MM/yyyy HH:mm format the web client
// renders.
const displayTimeLayout = "02/01/2006 15:04"

func FormatDisplayTime(t time.Time) string {
	return t.Format(displayTimeLayout)
}

func BuildTripRecord(t Trip) TripRecord {
	record := TripRecord{
		Trip:        t,
		DepartureAt: FormatDisplayTime(t.DepartureAt),
	}
	if t.Driver != nil {
		record.Driver = &DriverBrief{ID: t.Driver.ID, FullName: t.Driver.FullName}
	}
	if t.Vehicle != nil {
		record.Vehicle = &VehicleBrief{
			ID:      t.Vehicle.ID,
			Model:   t.Vehicle.Model,
			Plate:   t.Vehicle.Plate,
			Mileage: t.Vehicle.Mileage,
		}
	}
	if t.Request != nil && t.Request.Sector != nil {
		record.Sector = &SectorBrief{ID: t.Request.Sector.ID, Name: t.Request.Sector.Name}
	}
	return record
}

func BuildRequestRecord(r VehicleRequest) RequestRecord {
	record := RequestRecord{Request: r}
	if r.Sector != nil {
		record.Sector = &SectorBrief{ID: r.Sector.ID, Name: r.Sector.Name}
	}
	return record
}
