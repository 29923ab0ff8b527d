package service

import (
	"fleet-service/internal/model"
)

// Deferral reasons reported when approval succeeds but assignment cannot.
const (
	DeferredNoDriver  = "no available driver"
	DeferredNoVehicle = "no available vehicle"
)

// AssignmentPolicy picks one driver and one vehicle for an approved request
// from row-locked candidate sets. Returning ok=false defers the assignment;
// reason says which resource was missing.
type AssignmentPolicy interface {
	Name() string
	Pick(req model.VehicleRequest, drivers []model.Employee, vehicles []model.Vehicle) (driver *model.Employee, vehicle *model.Vehicle, ok bool, reason string)
}

// FirstFitPolicy takes the first candidate of each kind in store order,
// ignoring sector. This reproduces the original assignment behavior.
type FirstFitPolicy struct{}

func (FirstFitPolicy) Name() string { return "first_fit" }

func (FirstFitPolicy) Pick(req model.VehicleRequest, drivers []model.Employee, vehicles []model.Vehicle) (*model.Employee, *model.Vehicle, bool, string) {
	if len(drivers) == 0 {
		return nil, nil, false, DeferredNoDriver
	}
	if len(vehicles) == 0 {
		return nil, nil, false, DeferredNoVehicle
	}
	return &drivers[0], &vehicles[0], true, ""
}

// SectorAffinityPolicy prefers candidates belonging to the request's sector
// and falls back to first fit when the sector has none.
type SectorAffinityPolicy struct{}

func (SectorAffinityPolicy) Name() string { return "sector_affinity" }

func (SectorAffinityPolicy) Pick(req model.VehicleRequest, drivers []model.Employee, vehicles []model.Vehicle) (*model.Employee, *model.Vehicle, bool, string) {
	if len(drivers) == 0 {
		return nil, nil, false, DeferredNoDriver
	}
	if len(vehicles) == 0 {
		return nil, nil, false, DeferredNoVehicle
	}

	driver := &drivers[0]
	for i := range drivers {
		if drivers[i].SectorID == req.SectorID {
			driver = &drivers[i]
			break
		}
	}

	vehicle := &vehicles[0]
	for i := range vehicles {
		if vehicles[i].SectorID == req.SectorID {
			vehicle = &vehicles[i]
			break
		}
	}

	return driver, vehicle, true, ""
}

// PolicyFromName resolves the configured policy name; unknown names fall
// back to first fit.
func PolicyFromName(name string) AssignmentPolicy {
	if name == "sector_affinity" {
		return SectorAffinityPolicy{}
	}
	return FirstFitPolicy{}
}
